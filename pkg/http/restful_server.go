package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/iot-dashboard/pkg/iot"
)

const HeaderDeviceToken = "X-Device-Token"

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore

	// StaticDir holds the built front-end, served with index.html as the fallback.
	// Empty disables static serving.
	StaticDir string
}

func (rs *RestfulServer) GetLimiter(token string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(token)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(token string) bool {
	return rs.RateLimiterStore.Allow(token)
}

func (rs *RestfulServer) SetLimiter(token string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(token, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	api := rs.Server.Group("/api")
	{
		api.POST("/readings", rs.PostReading)
		api.GET("/devices/:device_id/readings", rs.GetReadings)
		api.GET("/devices/:device_id/alerts", rs.GetAlerts)
		api.POST("/limiter/:device_token", rs.PostLimiter)
	}

	if rs.StaticDir != "" {
		rs.Server.NoRoute(rs.ServeFrontend)
	}
}

// ServeFrontend serves files from StaticDir. Unknown paths outside /api get index.html
// so client side routes survive a reload.
func (rs *RestfulServer) ServeFrontend(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	file := filepath.Join(rs.StaticDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	index := filepath.Join(rs.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(index)
}
