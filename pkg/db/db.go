package db

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance   *DB
	instanceMu sync.Mutex
)

// GetInstance returns the process wide handle, opening it with dialector on first use.
// Later calls ignore dialector until CloseInstance.
func GetInstance(dialector gorm.Dialector) (*DB, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		d, err := Open(dialector)
		if err != nil {
			return nil, err
		}
		instance = d
	}
	return instance, nil
}

// CloseInstance closes the process wide handle if one is open.
func CloseInstance() error {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}

// Open connects with dialector and, unless IOT_AUTO_MIGRATE=false, migrates the schema.
func Open(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameDatabase)

	logLevel := gormlogger.Silent
	if common.IsDevelopment() {
		logLevel = gormlogger.Warn
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if dialector.Name() == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("get sqlite handle: %w", err)
		}
		// one writer keeps shared-cache memory databases free of table locks
		sqlDB.SetMaxOpenConns(1)
	}

	d := &DB{Conn: conn}

	if common.GetEnvBool(common.EnvKeyIOTAutoMigrate, true) {
		if err := d.Migrate(); err != nil {
			_ = d.Close()
			return nil, err
		}
	}

	return d, nil
}

func (d *DB) Migrate() error {
	logger := common.GetLoggerWith(common.LoggerNameDatabase)

	if err := d.Conn.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("Database migration completed")
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UseDatabaseURL builds the dialector from DATABASE_URL, which is mandatory.
func UseDatabaseURL() (gorm.Dialector, error) {
	return DialectorFromURL(os.Getenv(common.EnvKeyDatabaseURL))
}

// UseMemorySqliteDialector opens a fresh named in-memory database, so every call is isolated.
func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(withSqliteForeignKeys(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())))
}
