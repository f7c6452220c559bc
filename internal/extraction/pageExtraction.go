package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var errPageTimeout = errors.New("page extraction timeout")

// Extractor pulls the text layer out of uploaded documents. It is CPU bound and is
// expected to run on the worker pool.
type Extractor struct {
	pageTimeout time.Duration
	logger      *logger_i.Logger
}

func NewExtractor() *Extractor {
	return &Extractor{
		pageTimeout: config.PageExtractTimeout,
		logger:      logger_i.NewLogger("TextExtractor"),
	}
}

func (e *Extractor) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	switch mimeType {
	case MIMEPDF:
		return e.extractPDF(ctx, data)
	case MIMEDocx, MIMEDoc:
		return e.extractWord(data)
	case MIMEText:
		return strings.ToValidUTF8(string(data), ""), nil
	default:
		return "", fmt.Errorf("%w: %s", claimModel.ErrUnsupportedType, mimeType)
	}
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (text string, err error) {
	log := e.logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse pdf: %v", r)
		}
	}()

	f, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := f.NumPage()
	log.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		if ctx.Err() != nil {
			return sb.String(), ctx.Err()
		}
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := e.protectExtract(ctx, page)
		if err != nil {
			// keep the other pages
			log.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}

// handles .docx, .odt and .rtf content
func (e *Extractor) extractWord(data []byte) (string, error) {
	text, err := cat.FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to extract word document: %w", err)
	}
	return text, nil
}

func (e *Extractor) protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page parser panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-timer.C:
		return "", errPageTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
