package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"gorm.io/gorm"
)

type reviewsRepository interface {
	ListApproved(ctx context.Context) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmitReviewInput holds the public review form fields.
type SubmitReviewInput struct {
	Name    string `json:"name" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"required"`
}

// ModerateReviewInput is the admin patch for moderation flags.
type ModerateReviewInput struct {
	Approved *bool `json:"approved"`
	Featured *bool `json:"featured"`
}

// Service exposes review submission and moderation semantics.
type Service interface {
	ListPublic(ctx context.Context) ([]models.Review, error)
	ListAdmin(ctx context.Context) ([]models.Review, error)
	SubmitReview(ctx context.Context, input SubmitReviewInput) (*models.Review, error)
	ModerateReview(ctx context.Context, id uuid.UUID, input ModerateReviewInput) (*models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo reviewsRepository
}

// NewService builds the review service.
func NewService(repo reviewsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublic(ctx context.Context) ([]models.Review, error) {
	rows, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return rows, nil
}

func (s *service) ListAdmin(ctx context.Context) ([]models.Review, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return rows, nil
}

func (s *service) SubmitReview(ctx context.Context, input SubmitReviewInput) (*models.Review, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and message are required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	// New reviews always start unapproved, whatever the client sends.
	review := &models.Review{
		ID:       uuid.New(),
		Name:     name,
		Rating:   input.Rating,
		Message:  message,
		Approved: false,
		Featured: false,
	}
	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return created, nil
}

func (s *service) ModerateReview(ctx context.Context, id uuid.UUID, input ModerateReviewInput) (*models.Review, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup review")
	}

	if input.Approved != nil {
		row.Approved = *input.Approved
	}
	if input.Featured != nil {
		row.Featured = *input.Featured
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update review")
	}
	return row, nil
}

func (s *service) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup review")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	return nil
}
