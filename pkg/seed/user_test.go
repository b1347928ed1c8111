package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

func TestEnsureDemoUser(t *testing.T) {
	common.SetTestLoggerNop()
	s := NewTestSeeder(t)
	ctx := context.Background()

	first, err := s.EnsureDemoUser(ctx)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, DemoUserOpenID, first.OpenID)
	assert.Equal(t, "Demo User", first.Name)
	assert.Equal(t, DemoUserEmail, first.Email)
	assert.Equal(t, "demo", first.LoginMethod)
	assert.Equal(t, models.UserRoleUser, first.Role)

	second, err := s.EnsureDemoUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, s.Db.Conn.Model(&models.User{}).Where("open_id = ?", DemoUserOpenID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureDemoUser_KeepsOtherUsers(t *testing.T) {
	common.SetTestLoggerNop()
	s := NewTestSeeder(t)

	other := models.User{OpenID: "someone-else", Name: "Someone", Role: models.UserRoleAdmin}
	require.NoError(t, s.Db.Conn.Create(&other).Error)

	demo, err := s.EnsureDemoUser(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, other.ID, demo.ID)
}

func TestEnsureDemoUser_Cancelled(t *testing.T) {
	common.SetTestLoggerNop()
	s := NewTestSeeder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.EnsureDemoUser(ctx)
	assert.Error(t, err)
}
