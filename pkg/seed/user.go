package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
)

const (
	DemoUserOpenID = "demo-user"
	DemoUserEmail  = "demo@example.com"
)

// EnsureDemoUser returns the demo user, creating it on first use.
func (s *Seeder) EnsureDemoUser(ctx context.Context) (*models.User, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameSeed,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySeedUser),
	)

	var found []models.User
	err := s.Db.Conn.WithContext(ctx).
		Where("open_id = ?", DemoUserOpenID).
		Limit(1).
		Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("look up demo user: %w", err)
	}

	if len(found) > 0 {
		logger.Info("Demo user found", zap.Uint("user_id", found[0].ID))
		return &found[0], nil
	}

	logger.Info("Creating demo user")

	user := models.User{
		OpenID:       DemoUserOpenID,
		Name:         "Demo User",
		Email:        DemoUserEmail,
		LoginMethod:  "demo",
		Role:         models.UserRoleUser,
		LastSignedIn: s.Now().UTC(),
	}
	if err := s.Db.Conn.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}

	logger.Info("Demo user created", zap.Uint("user_id", user.ID))
	return &user, nil
}
