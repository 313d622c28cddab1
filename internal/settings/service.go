package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"github.com/surangaprinters/printshop-backend/pkg/types"
	"gorm.io/gorm"
)

const defaultShopName = "Suranga Printers"

type settingsRepository interface {
	First(ctx context.Context) (*models.Settings, error)
	Create(ctx context.Context, row *models.Settings) (*models.Settings, error)
	Update(ctx context.Context, row *models.Settings) error
}

// UpdateSettingsInput holds the admin settings form.
type UpdateSettingsInput struct {
	ShopName    *string            `json:"shopName"`
	Phone       *string            `json:"phone"`
	WhatsApp    *string            `json:"whatsapp"`
	Address     *string            `json:"address"`
	HoursMonSat *string            `json:"hoursMonSat"`
	HoursSunday *string            `json:"hoursSunday"`
	Social      *types.SocialLinks `json:"social"`
}

// Service exposes the shop profile singleton.
type Service interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*models.Settings, error)
}

type service struct {
	repo settingsRepository
}

// NewService builds the settings service.
func NewService(repo settingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// GetSettings returns the singleton, creating it with defaults on first read.
func (s *service) GetSettings(ctx context.Context) (*models.Settings, error) {
	row, err := s.repo.First(ctx)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}

	created, err := s.repo.Create(ctx, &models.Settings{
		ID:       uuid.New(),
		ShopName: defaultShopName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create settings")
	}
	return created, nil
}

func (s *service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*models.Settings, error) {
	row, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.ShopName != nil {
		name := strings.TrimSpace(*input.ShopName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopName must not be empty")
		}
		row.ShopName = name
	}
	if input.Phone != nil {
		row.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.WhatsApp != nil {
		row.WhatsApp = strings.TrimSpace(*input.WhatsApp)
	}
	if input.Address != nil {
		row.Address = strings.TrimSpace(*input.Address)
	}
	if input.HoursMonSat != nil {
		row.HoursMonSat = strings.TrimSpace(*input.HoursMonSat)
	}
	if input.HoursSunday != nil {
		row.HoursSunday = strings.TrimSpace(*input.HoursSunday)
	}
	if input.Social != nil {
		row.Social = *input.Social
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update settings")
	}
	return row, nil
}
