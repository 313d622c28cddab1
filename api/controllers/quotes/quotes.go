package quotes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surangaprinters/printshop-backend/api/responses"
	"github.com/surangaprinters/printshop-backend/api/validators"
	internalquotes "github.com/surangaprinters/printshop-backend/internal/quotes"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/pagination"
)

const filesField = "files"

// multipartMemoryBytes bounds how much of the form is held in memory before
// spilling to temp files.
const multipartMemoryBytes = 8 << 20

// Submit accepts the public quote request form with its attachments.
func Submit(svc internalquotes.Service, upload config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	maxBody := int64(upload.MaxQuoteFiles)*upload.MaxQuoteFileMB<<20 + 1<<20

	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		files, err := readAttachments(r.MultipartForm, upload.MaxQuoteFileMB<<20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalquotes.SubmitQuoteInput{
			CustomerName:   r.FormValue("customerName"),
			Phone:          r.FormValue("phone"),
			ContactMethod:  r.FormValue("contactMethod"),
			ServiceName:    r.FormValue("serviceName"),
			Quantity:       r.FormValue("quantity"),
			Size:           r.FormValue("size"),
			Color:          r.FormValue("color"),
			Paper:          r.FormValue("paper"),
			Finishing:      r.FormValue("finishing"),
			Notes:          r.FormValue("notes"),
			Fulfillment:    r.FormValue("fulfillment"),
			DeliveryArea:   r.FormValue("deliveryArea"),
			DeliveryFeeLkr: r.FormValue("deliveryFeeLkr"),
			Files:          files,
		}

		result, err := svc.SubmitQuote(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// List returns the admin quote queue page.
func List(svc internalquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := internalquotes.ListParams{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, err := svc.ListQuotes(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// Detail returns one quote with its attachments.
func Detail(svc internalquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		id, err := parseQuoteID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetQuote(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// Update applies the fulfillment patch. Only the whitelisted fields are read
// from the body; anything else is dropped.
func Update(svc internalquotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		id, err := parseQuoteID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body internalquotes.UpdateQuoteInput
		if err := validators.DecodeJSONBodyLenient(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateQuote(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func parseQuoteID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "quoteId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id")
	}
	return id, nil
}

func readAttachments(form *multipart.Form, maxFileBytes int64) ([]internalquotes.FileUpload, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[filesField]
	files := make([]internalquotes.FileUpload, 0, len(headers))
	for _, header := range headers {
		data, err := readAttachment(header, maxFileBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, internalquotes.FileUpload{
			Name:      header.Filename,
			MimeType:  header.Header.Get("Content-Type"),
			SizeBytes: int64(len(data)),
			Data:      data,
		})
	}
	return files, nil
}

func readAttachment(header *multipart.FileHeader, maxFileBytes int64) ([]byte, error) {
	if header.Size > maxFileBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the size limit").
			WithDetails(map[string]string{"file": header.Filename})
	}
	file, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFileBytes+1))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}
	if int64(len(data)) > maxFileBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the size limit").
			WithDetails(map[string]string{"file": header.Filename})
	}
	return data, nil
}
