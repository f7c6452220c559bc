package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/ClaimAPI/internal/adapter/utils"
	"github.com/akolanti/ClaimAPI/internal/api"
	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/data/store"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/handlers"
	"github.com/akolanti/ClaimAPI/internal/middleware"
	"github.com/akolanti/ClaimAPI/internal/ratelimit"
	"github.com/google/go-cmp/cmp"
)

type MockPipeline struct {
	calls     atomic.Int32
	OnProcess func(ctx context.Context, claim *claimModel.ClaimSubmission) claimModel.ClaimOutcome
}

func (m *MockPipeline) Process(ctx context.Context, claim *claimModel.ClaimSubmission) claimModel.ClaimOutcome {
	m.calls.Add(1)
	if m.OnProcess != nil {
		return m.OnProcess(ctx, claim)
	}
	return claimModel.ClaimOutcome{
		ClaimID:   claim.ClaimID,
		Documents: claim.Filenames(),
		Report: claimModel.ValidationReport{
			MissingDocuments: []claimModel.Label{claimModel.LabelIDCard},
			Timestamp:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		Decision: claimModel.ClaimDecision{
			Status:      claimModel.StatusRejected,
			Reason:      "Missing required documents: id_card.",
			Adjudicator: config.Adjudicator,
		},
	}
}

type testFile struct {
	name string
	data []byte
}

func textFile(name string) testFile {
	return testFile{name: name, data: []byte("HOSPITAL INVOICE\nPatient: Jane Smith\nTotal: 1250.50 USD")}
}

func claimRequest(t *testing.T, files ...testFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write(f.data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claim/process-claim", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.RemoteAddr = "10.0.0.1:5555"
	return req
}

func newTestRouter(t *testing.T, pipeline *MockPipeline, authToken string) http.Handler {
	t.Helper()
	limiter := ratelimit.NewLimiter(store.NewInMemoryCounterStore(time.Now), config.RateLimitWindow, config.RateLimitMaxRequests, false)
	r := utils.NewRouter()
	RegisterRoutes(r, Routes{
		Claims:      handlers.NewClaimHandler(pipeline, handlers.Limits{MaxBatchSize: 3, MaxFileSize: 5 << 20}),
		Chain:       middleware.NewChain(limiter, authToken),
		Environment: "test",
	})
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var out api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("error body is not json: %s", rec.Body.String())
	}
	return out
}

func TestProcessClaim_Success(t *testing.T) {
	pipeline := &MockPipeline{}
	router := newTestRouter(t, pipeline, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, claimRequest(t, textFile("bill.txt"), textFile("discharge.txt")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"documents": []any{"bill.txt", "discharge.txt"},
		"validation": map[string]any{
			"missing_documents":    []any{"id_card"},
			"discrepancies":        []any{},
			"validation_timestamp": "2024-06-01T12:00:00Z",
		},
		"claim_decision": map[string]any{
			"status":      "rejected",
			"reason":      "Missing required documents: id_card.",
			"adjudicator": config.Adjudicator,
			"notes":       nil,
			"explanation": nil,
		},
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Error("missing trace header")
	}
}

func TestProcessClaim_SubmissionFields(t *testing.T) {
	var got *claimModel.ClaimSubmission
	pipeline := &MockPipeline{OnProcess: func(ctx context.Context, claim *claimModel.ClaimSubmission) claimModel.ClaimOutcome {
		got = claim
		return claimModel.ClaimOutcome{}
	}}
	req := claimRequest(t, textFile("bill.txt"))
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	req.Header.Set("X-Trace-Id", "trace-123")

	rec := httptest.NewRecorder()
	newTestRouter(t, pipeline, "").ServeHTTP(rec, req)

	if got == nil {
		t.Fatalf("pipeline not called, status %d", rec.Code)
	}
	if got.ClientKey != "203.0.113.7" || got.TraceID != "trace-123" || got.ClaimID == "" {
		t.Errorf("submission = %+v", got)
	}
	if len(got.Documents) != 1 || got.Documents[0].MIMEType != "text/plain" || len(got.Documents[0].Raw) == 0 {
		t.Errorf("documents = %+v", got.Documents)
	}
}

func TestProcessClaim_RequestValidation(t *testing.T) {
	big := testFile{name: "big.txt", data: bytes.Repeat([]byte("a"), 5<<20+1)}
	png := testFile{name: "scan.png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")}
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		wantCode int
	}{
		{"no files", func(t *testing.T) *http.Request { return claimRequest(t) }, http.StatusBadRequest},
		{"too many files", func(t *testing.T) *http.Request {
			return claimRequest(t, textFile("a.txt"), textFile("b.txt"), textFile("c.txt"), textFile("d.txt"))
		}, http.StatusBadRequest},
		{"not multipart", func(t *testing.T) *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/claim/process-claim", strings.NewReader(`{"files":[]}`))
			req.Header.Set("Content-Type", "application/json")
			return req
		}, http.StatusBadRequest},
		{"file too large", func(t *testing.T) *http.Request { return claimRequest(t, big) }, http.StatusRequestEntityTooLarge},
		{"unsupported type", func(t *testing.T) *http.Request { return claimRequest(t, textFile("bill.txt"), png) }, http.StatusUnsupportedMediaType},
		{"empty file", func(t *testing.T) *http.Request {
			return claimRequest(t, testFile{name: "bill.pdf", data: nil})
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &MockPipeline{}
			rec := httptest.NewRecorder()
			newTestRouter(t, pipeline, "").ServeHTTP(rec, tt.req(t))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			body := decodeError(t, rec)
			if body.Error.Type != api.ErrorTypeRequestValidation || body.Error.Code != tt.wantCode || body.Error.Retry {
				t.Errorf("error body = %+v", body)
			}
			if body.TraceID == "" {
				t.Error("error body without trace id")
			}
			if pipeline.calls.Load() != 0 {
				t.Error("a rejected request must not reach the pipeline")
			}
		})
	}
}

func TestProcessClaim_RateLimit(t *testing.T) {
	pipeline := &MockPipeline{}
	router := newTestRouter(t, pipeline, "")

	for i := 1; i <= 6; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, claimRequest(t, textFile("bill.txt")))
		want := http.StatusOK
		if i == 6 {
			want = http.StatusTooManyRequests
		}
		if rec.Code != want {
			t.Fatalf("attempt %d: status = %d, want %d", i, rec.Code, want)
		}
		if i == 6 {
			body := decodeError(t, rec)
			if body.Error.Type != api.ErrorTypeRateLimited || !body.Error.Retry {
				t.Errorf("error body = %+v", body)
			}
		}
	}
	if got := pipeline.calls.Load(); got != 5 {
		t.Errorf("pipeline calls = %d, want 5", got)
	}

	// a different forwarded client has its own window
	req := claimRequest(t, textFile("bill.txt"))
	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d", rec.Code)
	}
}

func TestHealth_NeverRateLimited(t *testing.T) {
	router := newTestRouter(t, &MockPipeline{}, "secret")
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("health call %d: status = %d", i, rec.Code)
		}
		var body api.HealthResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		want := api.HealthResponse{Status: "ok", Message: "ClaimAPI is running", Environment: "test", Version: config.ServiceVersion}
		if diff := cmp.Diff(want, body); diff != "" {
			t.Fatalf("health mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestProcessClaim_BearerAuth(t *testing.T) {
	tests := []struct {
		header   string
		wantCode int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer wrong", http.StatusUnauthorized},
		{"Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("header %q", tt.header), func(t *testing.T) {
			req := claimRequest(t, textFile("bill.txt"))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newTestRouter(t, &MockPipeline{}, "secret").ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		forwarded string
		remote    string
		want      string
	}{
		{"", "192.0.2.1:1234", "192.0.2.1"},
		{"203.0.113.7", "192.0.2.1:1234", "203.0.113.7"},
		{" 203.0.113.7 , 10.0.0.1", "192.0.2.1:1234", "203.0.113.7"},
		{"", "not-a-hostport", "not-a-hostport"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if tt.forwarded != "" {
			req.Header.Set("X-Forwarded-For", tt.forwarded)
		}
		if got := utils.ClientIP(req); got != tt.want {
			t.Errorf("ClientIP(%q, %q) = %q; want %q", tt.forwarded, tt.remote, got, tt.want)
		}
	}
}
