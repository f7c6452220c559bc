// Package pipeline runs one claim through text extraction, classification and the
// specialist extractors, one goroutine per document, then validates and decides.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/coordinator"
	"github.com/akolanti/ClaimAPI/internal/decision"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/extraction"
	"github.com/akolanti/ClaimAPI/internal/metrics"
	"github.com/akolanti/ClaimAPI/internal/validation"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

var errNoOutcome = errors.New("document watcher exited without an outcome")

type Service interface {
	Process(ctx context.Context, claim *claimModel.ClaimSubmission) claimModel.ClaimOutcome
}

// Capabilities are the model and parser backed stages a document goes through.
type Capabilities struct {
	Text       claimModel.TextExtractor
	Vision     claimModel.VisionExtractor
	Classifier claimModel.Classifier
	Extractor  claimModel.FieldExtractor
}

type Options struct {
	DocumentTimeout time.Duration
	ClaimDeadline   time.Duration
	MinTextLength   int
	LowConfidence   float64
	NameThreshold   float64
	Clock           func() time.Time
}

func DefaultOptions() Options {
	return Options{
		DocumentTimeout: config.DocumentTimeout,
		ClaimDeadline:   config.ClaimDeadline,
		MinTextLength:   config.MinTextLength,
		LowConfidence:   config.LowConfidence,
		NameThreshold:   config.NameSimilarityThreshold,
		Clock:           time.Now,
	}
}

type service struct {
	coordinator *coordinator.Coordinator
	caps        Capabilities
	opts        Options
	validator   validation.Validator
	logger      *logger_i.Logger
}

func NewService(coord *coordinator.Coordinator, caps Capabilities, opts Options) Service {
	defaults := DefaultOptions()
	if opts.DocumentTimeout <= 0 {
		opts.DocumentTimeout = defaults.DocumentTimeout
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = defaults.MinTextLength
	}
	if opts.LowConfidence <= 0 {
		opts.LowConfidence = defaults.LowConfidence
	}
	if opts.Clock == nil {
		opts.Clock = defaults.Clock
	}
	return &service{
		coordinator: coord,
		caps:        caps,
		opts:        opts,
		validator:   validation.NewValidator(opts.NameThreshold),
		logger:      logger_i.NewLogger("Pipeline"),
	}
}

func (s *service) Process(ctx context.Context, claim *claimModel.ClaimSubmission) claimModel.ClaimOutcome {
	start := time.Now()
	log := s.logger.FromContext(ctx).With("claimId", claim.ClaimID)
	log.Info("processing claim", "documents", len(claim.Documents))

	s.backup(ctx, claim)

	claimCtx := ctx
	if s.opts.ClaimDeadline > 0 {
		var cancel context.CancelFunc
		claimCtx, cancel = context.WithTimeout(ctx, s.opts.ClaimDeadline)
		defer cancel()
	}

	barrier := NewBarrier(claim.Documents)
	wg := conc.NewWaitGroup()
	for i, unit := range claim.Documents {
		unit.Index = i
		wg.Go(func() {
			s.watchDocument(claimCtx, barrier, unit)
		})
	}
	if recovered := wg.WaitAndRecover(); recovered != nil {
		log.Error("document watcher panicked", "error", recovered.AsError())
	}
	if barrier.Pending() > 0 {
		n := barrier.FailPending(claimModel.NewExtractionError("document", claimModel.FailureCapabilityError, errNoOutcome))
		log.Error("documents left without an outcome", "count", n)
	}

	results := barrier.Results()
	for _, r := range results {
		label, outcome := string(r.Label), string(r.State)
		if label == "" {
			label = "unclassified"
		}
		if r.Failure != nil {
			outcome = string(r.Failure.Reason)
		}
		metrics.CountDocument(label, outcome)
	}

	report := s.validator.Validate(results, s.opts.Clock())
	verdict := decision.Decide(report)
	metrics.CountDecision(string(verdict.Status))
	metrics.CaptureClaimMetrics("process_claim", time.Since(start))
	log.Info("claim decided", "status", verdict.Status, "missing", report.MissingDocuments,
		"discrepancies", len(report.Discrepancies), "elapsed", time.Since(start))

	return claimModel.ClaimOutcome{
		ClaimID:   claim.ClaimID,
		Documents: claim.Filenames(),
		Results:   results,
		Report:    report,
		Decision:  verdict,
	}
}

// backup hands the raw bytes to the coordinator before any unit releases its buffer.
func (s *service) backup(ctx context.Context, claim *claimModel.ClaimSubmission) {
	items := make([]coordinator.BackupItem, 0, len(claim.Documents))
	for _, u := range claim.Documents {
		items = append(items, coordinator.BackupItem{Filename: u.Filename, ContentType: u.MIMEType, Data: u.Raw})
	}
	s.coordinator.Backup(ctx, claim.ClaimID, items)
}

// watchDocument gives the document its own deadline. The work runs in a separate
// goroutine so a capability that ignores its context cannot hold the barrier.
func (s *service) watchDocument(ctx context.Context, barrier *Barrier, unit *claimModel.DocumentUnit) {
	docCtx, cancel := context.WithTimeout(ctx, s.opts.DocumentTimeout)
	defer cancel()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		recovered := panics.Try(func() {
			s.processDocument(docCtx, barrier, unit)
		})
		if recovered != nil {
			barrier.Fail(unit.Index, claimModel.NewExtractionError("document", claimModel.FailureCapabilityError, recovered.AsError()))
		}
	}()

	select {
	case <-finished:
	case <-docCtx.Done():
		if barrier.Fail(unit.Index, contextFailure("document", docCtx.Err())) {
			s.logger.FromContext(ctx).Warn("document timed out", "file", unit.Filename, "error", docCtx.Err())
		}
	}
}

func (s *service) processDocument(ctx context.Context, barrier *Barrier, unit *claimModel.DocumentUnit) {
	log := s.logger.FromContext(ctx).With("file", unit.Filename, "index", unit.Index)

	text, err := s.extractText(ctx, unit)
	if err != nil {
		log.Warn("text stage failed", "error", err)
		barrier.Fail(unit.Index, asExtractionError("text", err))
		return
	}
	unit.Text = text
	unit.State = claimModel.StateTextExtracted
	barrier.Advance(unit.Index, unit.State, "", 0)

	s.classify(ctx, unit)
	barrier.Advance(unit.Index, unit.State, unit.Label, unit.Confidence)

	record, err := s.caps.Extractor.Extract(ctx, unit.Label, unit.Text)
	if err != nil {
		failure := asExtractionError("extract", err)
		if ctx.Err() != nil {
			failure = contextFailure("extract", ctx.Err())
		}
		log.Warn("extraction failed", "label", unit.Label, "reason", failure.Reason, "error", err)
		unit.State = claimModel.StateFailed
		barrier.Fail(unit.Index, failure)
		return
	}
	unit.State = claimModel.StateExtracted
	barrier.Complete(unit.Index, record)
}

// extractText runs the parser on the worker pool and falls back to vision once when
// the text layer is too thin. The raw buffer is released when the stage ends.
func (s *service) extractText(ctx context.Context, unit *claimModel.DocumentUnit) (string, error) {
	defer unit.Release()
	log := s.logger.FromContext(ctx).With("file", unit.Filename)

	var text string
	err := s.coordinator.RunCPU(ctx, func(ctx context.Context) error {
		var extractErr error
		text, extractErr = s.caps.Text.ExtractText(ctx, unit.Raw, unit.MIMEType)
		return extractErr
	})
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		// an unreadable text layer is treated like a scan
		log.Warn("text extraction failed, trying vision", "error", err)
		text = ""
	}

	if !extraction.Insufficient(text, s.opts.MinTextLength) {
		return text, nil
	}

	log.Info("text layer insufficient, using vision", "chars", len(text))
	unit.UsedVision = true
	visionText, err := s.caps.Vision.ExtractViaVision(ctx, unit.Raw, unit.MIMEType)
	if err != nil {
		return "", err
	}
	return visionText, nil
}

func (s *service) classify(ctx context.Context, unit *claimModel.DocumentUnit) {
	unit.State = claimModel.StateClassified
	if extraction.Insufficient(unit.Text, config.MinClassifyLength) {
		unit.Label = claimModel.LabelOther
		return
	}

	result, err := s.caps.Classifier.Classify(ctx, unit.Filename, unit.Text)
	if err != nil {
		s.logger.FromContext(ctx).Warn("classification failed, labelling as other", "file", unit.Filename, "error", err)
		unit.Label = claimModel.LabelOther
		unit.Confidence = 0
		return
	}
	unit.Label = result.Label
	unit.Confidence = result.Confidence
	unit.LowConfidence = result.Confidence < s.opts.LowConfidence
}

func contextFailure(stage string, err error) *claimModel.ExtractionError {
	if errors.Is(err, context.DeadlineExceeded) {
		return claimModel.NewExtractionError(stage, claimModel.FailureCapabilityTimeout, err)
	}
	return claimModel.NewExtractionError(stage, claimModel.FailureCapabilityError, fmt.Errorf("cancelled: %w", err))
}

func asExtractionError(stage string, err error) *claimModel.ExtractionError {
	var extractionErr *claimModel.ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return contextFailure(stage, err)
	}
	return claimModel.NewExtractionError(stage, claimModel.FailureCapabilityError, err)
}
