package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

const DefaultVerifyLimit = 3

type TableCount struct {
	Table string
	Rows  int64
}

type VerifyReport struct {
	Devices []models.IoTDevice
	Counts  []TableCount
}

// Verify reads back the first limit IoT devices and the row count of every table.
func (s *Seeder) Verify(ctx context.Context, limit int) (*VerifyReport, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameSeed,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySeedVerify),
	)

	if limit <= 0 {
		limit = DefaultVerifyLimit
	}

	report := &VerifyReport{}

	if err := s.Db.Conn.WithContext(ctx).Order("id").Limit(limit).Find(&report.Devices).Error; err != nil {
		return nil, fmt.Errorf("read iot devices: %w", err)
	}

	logger.Info("Devices read back",
		zap.Uints("ids", common.Mapper(report.Devices, func(d models.IoTDevice) uint { return d.ID })))

	for _, model := range models.All() {
		var count int64
		if err := s.Db.Conn.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", tableName(model), err)
		}
		report.Counts = append(report.Counts, TableCount{Table: tableName(model), Rows: count})
	}

	return report, nil
}

func tableName(model any) string {
	if t, ok := model.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", model)
}

// Count returns the row count recorded for table, or -1 when it was not counted.
func (r *VerifyReport) Count(table string) int64 {
	for _, c := range r.Counts {
		if c.Table == table {
			return c.Rows
		}
	}
	return -1
}
