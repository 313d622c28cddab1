package controllers

import (
	"net/http"
	"strings"

	"github.com/surangaprinters/printshop-backend/api/responses"
	"github.com/surangaprinters/printshop-backend/internal/portfolio"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
)

func PublicPortfolio(svc portfolio.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "portfolio service unavailable"))
			return
		}
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		rows, err := svc.ListPublic(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminPortfolio(svc portfolio.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "portfolio service unavailable"))
			return
		}
		rows, err := svc.ListAdmin(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminCreatePortfolioItem(svc portfolio.Service, upload config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "portfolio service unavailable"))
			return
		}

		input, err := parsePortfolioForm(w, r, upload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateItem(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdatePortfolioItem(svc portfolio.Service, upload config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "portfolio service unavailable"))
			return
		}

		id, err := parseIDParam(r, "itemId", "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parsePortfolioForm(w, r, upload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateItem(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDeletePortfolioItem(svc portfolio.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "portfolio service unavailable"))
			return
		}

		id, err := parseIDParam(r, "itemId", "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parsePortfolioForm(w http.ResponseWriter, r *http.Request, upload config.UploadConfig) (*portfolio.UpsertItemInput, error) {
	maxImageBytes := upload.MaxImageUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1<<20)
	if err := r.ParseMultipartForm(imageFormMemoryBytes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	defer r.MultipartForm.RemoveAll()

	input := &portfolio.UpsertItemInput{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Tag:         r.FormValue("tag"),
		Description: r.FormValue("description"),
		Featured:    parseOptionalBool(r.FormValue("featured")),
		Active:      parseOptionalBool(r.FormValue("active")),
	}

	name, mime, data, err := readImageFile(r.MultipartForm, "image", maxImageBytes)
	if err != nil {
		return nil, err
	}
	if data != nil {
		input.Image = &portfolio.ImageUpload{Name: name, MimeType: mime, Data: data}
	}
	return input, nil
}
