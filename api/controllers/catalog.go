package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surangaprinters/printshop-backend/api/responses"
	"github.com/surangaprinters/printshop-backend/internal/catalog"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
)

const imageFormMemoryBytes = 8 << 20

func PublicServices(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		rows, err := svc.ListPublic(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminServices(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
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

func AdminCreateService(svc catalog.Service, upload config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := parseServiceForm(w, r, upload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateService(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdateService(svc catalog.Service, upload config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parseIDParam(r, "serviceId", "service id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseServiceForm(w, r, upload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateService(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDeleteService(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parseIDParam(r, "serviceId", "service id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteService(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseServiceForm(w http.ResponseWriter, r *http.Request, upload config.UploadConfig) (*catalog.UpsertServiceInput, error) {
	maxImageBytes := upload.MaxImageUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1<<20)
	if err := r.ParseMultipartForm(imageFormMemoryBytes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	defer r.MultipartForm.RemoveAll()

	input := &catalog.UpsertServiceInput{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Featured:    parseOptionalBool(r.FormValue("featured")),
		Active:      parseOptionalBool(r.FormValue("active")),
	}

	name, mime, data, err := readImageFile(r.MultipartForm, "heroImage", maxImageBytes)
	if err != nil {
		return nil, err
	}
	if data != nil {
		input.HeroImage = &catalog.HeroImageUpload{Name: name, MimeType: mime, Data: data}
	}
	return input, nil
}

func parseIDParam(r *http.Request, param, label string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return id, nil
}

func parseOptionalBool(raw string) *bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil
	}
	return &value
}

// readImageFile extracts a single optional image from the form. A missing
// field returns nil data with no error.
func readImageFile(form *multipart.Form, field string, maxBytes int64) (string, string, []byte, error) {
	if form == nil || len(form.File[field]) == 0 {
		return "", "", nil, nil
	}
	header := form.File[field][0]
	if header.Size > maxBytes {
		return "", "", nil, pkgerrors.New(pkgerrors.CodeValidation, "image exceeds the size limit").
			WithDetails(map[string]string{"file": header.Filename})
	}
	file, err := header.Open()
	if err != nil {
		return "", "", nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded image")
	}
	if int64(len(data)) > maxBytes {
		return "", "", nil, pkgerrors.New(pkgerrors.CodeValidation, "image exceeds the size limit").
			WithDetails(map[string]string{"file": header.Filename})
	}
	return header.Filename, header.Header.Get("Content-Type"), data, nil
}
