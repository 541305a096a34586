package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/coachcenter/internal/config"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// AdminEnsurer creates an administrator unless the email is taken
type AdminEnsurer interface {
	EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error)
}

// CreateDefaultAdmin ensures the administrator configured through ADMIN_EMAIL and
// ADMIN_PASSWORD exists. Nothing is seeded when they are unset.
func CreateDefaultAdmin(ctx context.Context, cfg *config.Config, admins AdminEnsurer) error {
	if !cfg.AdminSeedConfigured() {
		logger.Debug().Msg("No default admin configured, skipping seed")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	created, err := admins.EnsureDefaultAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to ensure default admin: %w", err)
	}

	if created {
		logger.Info().Str("email", cfg.Auth.AdminEmail).Msg("Default admin seeded")
	} else {
		logger.Info().Str("email", cfg.Auth.AdminEmail).Msg("Default admin already present")
	}
	return nil
}
