package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/akolanti/ClaimAPI/internal/api"
	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/extraction"
)

const (
	filesField      = "files"
	multipartMemory = 32 << 20
)

type Limits struct {
	MaxBatchSize int
	MaxFileSize  int64
}

func (l Limits) withDefaults() Limits {
	if l.MaxBatchSize <= 0 {
		l.MaxBatchSize = config.MaxBatchSize
	}
	if l.MaxFileSize <= 0 {
		l.MaxFileSize = config.MaxFileSize
	}
	return l
}

// RequestError is a rejected request. Nothing has run when it is returned.
type RequestError struct {
	Code    int
	Type    api.ErrorType
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Code, e.Type, e.Message)
}

func badRequest(code int, format string, args ...any) *RequestError {
	return &RequestError{Code: code, Type: api.ErrorTypeRequestValidation, Message: fmt.Sprintf(format, args...)}
}

// readSubmission checks count, size and type of every file before any is handed on.
func readSubmission(w http.ResponseWriter, r *http.Request, limits Limits) (*claimModel.ClaimSubmission, *RequestError) {
	bodyLimit := int64(limits.MaxBatchSize)*limits.MaxFileSize + config.MultipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, badRequest(http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", bodyLimit)
		}
		return nil, badRequest(http.StatusBadRequest, "expected a multipart/form-data body with a %q field", filesField)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File[filesField]
	switch {
	case len(headers) == 0:
		return nil, badRequest(http.StatusBadRequest, "at least one file is required in the %q field", filesField)
	case len(headers) > limits.MaxBatchSize:
		return nil, badRequest(http.StatusBadRequest, "at most %d files per claim, got %d", limits.MaxBatchSize, len(headers))
	}

	claim := &claimModel.ClaimSubmission{ReceivedAt: time.Now().UTC()}
	for i, fh := range headers {
		data, reqErr := readFile(fh, limits.MaxFileSize)
		if reqErr != nil {
			return nil, reqErr
		}
		mimeType, err := extraction.Sniff(fh.Filename, data)
		switch {
		case errors.Is(err, claimModel.ErrEmptyDocument):
			return nil, badRequest(http.StatusBadRequest, "file %q is empty", fh.Filename)
		case err != nil:
			return nil, badRequest(http.StatusUnsupportedMediaType, "file %q is not an accepted type (%v)", fh.Filename, extraction.AllowedExtensions())
		}

		claim.Documents = append(claim.Documents, &claimModel.DocumentUnit{
			Index:    i,
			Filename: fh.Filename,
			MIMEType: mimeType,
			Size:     int64(len(data)),
			Raw:      data,
			State:    claimModel.StateReceived,
		})
	}
	return claim, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, *RequestError) {
	if fh.Size > maxSize {
		return nil, badRequest(http.StatusRequestEntityTooLarge, "file %q exceeds %d bytes", fh.Filename, maxSize)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, badRequest(http.StatusBadRequest, "could not read file %q", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, badRequest(http.StatusBadRequest, "could not read file %q", fh.Filename)
	}
	if int64(len(data)) > maxSize {
		return nil, badRequest(http.StatusRequestEntityTooLarge, "file %q exceeds %d bytes", fh.Filename, maxSize)
	}
	return data, nil
}
