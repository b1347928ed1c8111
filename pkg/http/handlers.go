package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/iot"
	"liyu1981.xyz/iot-dashboard/pkg/models"

	z "github.com/Oudwins/zog"
)

func (rs *RestfulServer) PostReading(c *gin.Context) {
	token := c.GetHeader(HeaderDeviceToken)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + HeaderDeviceToken + " header"})
		return
	}

	// only known devices get a limiter
	if _, err := rs.Iot.Device.Authenticate(c.Request.Context(), token); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	if !rs.CheckDeviceLimiter(token) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req models.ReadingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := rs.Iot.Reading.Ingest(c.Request.Context(), token, &req)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, iot.ErrUnknownDevice):
		return http.StatusUnauthorized
	case errors.Is(err, iot.ErrInactiveDevice):
		return http.StatusForbidden
	case errors.Is(err, iot.ErrInvalidReading):
		return http.StatusBadRequest
	default:
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Ingest failed", zap.Error(err))
		return http.StatusInternalServerError
	}
}

func deviceIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("device_id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	deviceID, ok := deviceIDParam(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
	}

	readings, err := rs.Iot.Reading.GetDeviceReadings(c.Request.Context(), deviceID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, readings)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	deviceID, ok := deviceIDParam(c)
	if !ok {
		return
	}

	events, err := rs.Iot.Alert.GetDeviceAlertEvents(c.Request.Context(), deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().Required().GT(0),
	"Burst": z.Int().Required().GT(0),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	token := c.Param("device_token")

	var req LimiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if issues := limiterRequestSchema.Validate(&req); len(issues) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate and burst must be positive"})
		return
	}

	rs.SetLimiter(token, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
