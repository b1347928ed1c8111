package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm translated", fmt.Errorf("insert device type: %w", gorm.ErrDuplicatedKey), true},
		{"mysql dup entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'PRIMARY'"}, true},
		{"mysql fk failure", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, false},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres not null violation", &pgconn.PgError{Code: "23502"}, false},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, true},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, false},
		{"gorm fk translated", gorm.ErrForeignKeyViolated, false},
		{"plain", errors.New("connection reset"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsDuplicateKey(c.err))
		})
	}
}

func TestIsDuplicateKey_Sqlite(t *testing.T) {
	common.SetTestLoggerNop()

	instance, err := Open(UseMemorySqliteDialector())
	require.NoError(t, err)
	defer instance.Close()

	deviceType := models.DeviceType{ID: 1, Name: "Luz", Icon: "💡", ControlType: models.ControlTypeSlider}
	require.NoError(t, instance.Conn.Create(&deviceType).Error)

	again := models.DeviceType{ID: 1, Name: "Luz", Icon: "💡", ControlType: models.ControlTypeSlider}
	err = instance.Conn.Create(&again).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}
