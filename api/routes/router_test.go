package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	internalauth "github.com/surangaprinters/printshop-backend/internal/auth"
	"github.com/surangaprinters/printshop-backend/internal/catalog"
	"github.com/surangaprinters/printshop-backend/internal/deliveryareas"
	"github.com/surangaprinters/printshop-backend/internal/portfolio"
	"github.com/surangaprinters/printshop-backend/internal/quotes"
	"github.com/surangaprinters/printshop-backend/internal/reviews"
	"github.com/surangaprinters/printshop-backend/internal/settings"
	pkgAuth "github.com/surangaprinters/printshop-backend/pkg/auth"
	"github.com/surangaprinters/printshop-backend/pkg/auth/session"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, input internalauth.LoginInput) (*internalauth.LoginResult, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*internalauth.Profile, error) {
	return &internalauth.Profile{ID: userID, Email: "admin@example.com", Role: "admin"}, nil
}

type stubQuoteService struct{}

func (stubQuoteService) SubmitQuote(ctx context.Context, input quotes.SubmitQuoteInput) (*quotes.SubmitQuoteResult, error) {
	panic("unimplemented")
}

func (stubQuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*quotes.QuoteItem, error) {
	panic("unimplemented")
}

func (stubQuoteService) ListQuotes(ctx context.Context, params quotes.ListParams) (*quotes.ListResult, error) {
	return &quotes.ListResult{Items: []quotes.QuoteItem{}}, nil
}

func (stubQuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input quotes.UpdateQuoteInput) (*quotes.QuoteItem, error) {
	panic("unimplemented")
}

type stubCatalogService struct{}

func (stubCatalogService) ListPublic(ctx context.Context) ([]models.Service, error) {
	return []models.Service{}, nil
}

func (stubCatalogService) ListAdmin(ctx context.Context) ([]models.Service, error) {
	return []models.Service{}, nil
}

func (stubCatalogService) CreateService(ctx context.Context, input catalog.UpsertServiceInput) (*models.Service, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateService(ctx context.Context, id uuid.UUID, input catalog.UpsertServiceInput) (*models.Service, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) SeedDefaults(ctx context.Context) error {
	return nil
}

type stubPortfolioService struct{}

func (stubPortfolioService) ListPublic(ctx context.Context, category string) ([]models.PortfolioItem, error) {
	return []models.PortfolioItem{}, nil
}

func (stubPortfolioService) ListAdmin(ctx context.Context) ([]models.PortfolioItem, error) {
	return []models.PortfolioItem{}, nil
}

func (stubPortfolioService) CreateItem(ctx context.Context, input portfolio.UpsertItemInput) (*models.PortfolioItem, error) {
	panic("unimplemented")
}

func (stubPortfolioService) UpdateItem(ctx context.Context, id uuid.UUID, input portfolio.UpsertItemInput) (*models.PortfolioItem, error) {
	panic("unimplemented")
}

func (stubPortfolioService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubReviewsService struct{}

func (stubReviewsService) ListPublic(ctx context.Context) ([]models.Review, error) {
	return []models.Review{}, nil
}

func (stubReviewsService) ListAdmin(ctx context.Context) ([]models.Review, error) {
	return []models.Review{}, nil
}

func (stubReviewsService) SubmitReview(ctx context.Context, input reviews.SubmitReviewInput) (*models.Review, error) {
	return &models.Review{ID: uuid.New(), Name: input.Name, Rating: input.Rating, Message: input.Message}, nil
}

func (stubReviewsService) ModerateReview(ctx context.Context, id uuid.UUID, input reviews.ModerateReviewInput) (*models.Review, error) {
	panic("unimplemented")
}

func (stubReviewsService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubAreasService struct{}

func (stubAreasService) ListPublic(ctx context.Context) ([]models.DeliveryArea, error) {
	return []models.DeliveryArea{}, nil
}

func (stubAreasService) ListAdmin(ctx context.Context) ([]models.DeliveryArea, error) {
	return []models.DeliveryArea{}, nil
}

func (stubAreasService) FindByArea(ctx context.Context, area string) (*models.DeliveryArea, error) {
	return nil, nil
}

func (stubAreasService) CreateArea(ctx context.Context, input deliveryareas.UpsertAreaInput) (*models.DeliveryArea, error) {
	panic("unimplemented")
}

func (stubAreasService) UpdateArea(ctx context.Context, id uuid.UUID, input deliveryareas.UpsertAreaInput) (*models.DeliveryArea, error) {
	panic("unimplemented")
}

func (stubAreasService) DeleteArea(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubSettingsService struct{}

func (stubSettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return &models.Settings{ShopName: "Suranga Printers"}, nil
}

func (stubSettingsService) UpdateSettings(ctx context.Context, input settings.UpdateSettingsInput) (*models.Settings, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},         // db.Pinger
		(*redis.Client)(nil), // *redis.Client
		stubPinger{},         // cloudinary.Pinger
		stubSessionChecker{},
		Services{
			Auth:          stubAuthService{},
			Quotes:        stubQuoteService{},
			Catalog:       stubCatalogService{},
			Portfolio:     stubPortfolioService{},
			Reviews:       stubReviewsService{},
			DeliveryAreas: stubAreasService{},
			Settings:      stubSettingsService{},
		},
	)
}

func TestHealthLiveAlwaysUp(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicGroupNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/api/ping", "/api/services", "/api/portfolio", "/api/reviews", "/api/delivery-areas", "/api/settings"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/quotes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "viewer"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "admin"))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestAdminQuotesListWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "admin"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin quote list got %d", resp.Code)
	}
}

func TestAdminMeReturnsProfile(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "admin"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for me got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "admin@example.com") {
		t.Fatalf("expected profile in body got %s", resp.Body.String())
	}
}

func TestPublicReviewRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestPublicReviewAcceptsGoodJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"name":"Kasun","rating":5,"message":"Great banners, quick turnaround."}`
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for valid payload got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
