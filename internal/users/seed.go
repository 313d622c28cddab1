package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/security"
	"gorm.io/gorm"
)

const tempPasswordLength = 16

// EnsureAdmin creates the bootstrap admin account when none exists for the
// configured email. With no password configured a temporary one is generated
// and logged once, so a fresh deployment is never locked out.
func EnsureAdmin(ctx context.Context, repo *Repository, seed config.AdminSeedConfig, pwCfg config.PasswordConfig, logg *logger.Logger) error {
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" {
		logg.Warn(ctx, "admin seed skipped: no admin email configured")
		return nil
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin account: %w", err)
	}

	password := seed.Password
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return fmt.Errorf("generate temp password: %w", err)
		}
		password = generated
		logg.Warn(logg.WithField(ctx, "temp_password", generated), "admin seeded with a temporary password, rotate it immediately")
	}

	hash, err := security.HashPassword(password, pwCfg)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := repo.Create(ctx, &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
	}); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	logg.Info(logg.WithField(ctx, "email", email), "admin account seeded")
	return nil
}
