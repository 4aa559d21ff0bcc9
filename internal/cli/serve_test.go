package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mfeldt/renderbox/pkg/config"
	"github.com/mfeldt/renderbox/pkg/markup"
	"github.com/mfeldt/renderbox/pkg/pipeline"
)

func testServer() *server {
	return &server{
		runner:    pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{})),
		resources: markup.NewResources(),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
}

func testRouter(s *server) http.Handler {
	router := chi.NewRouter()
	router.Use(requestID)
	router.Get("/healthz", s.handleHealth)
	router.Post("/render", s.handleRender)
	return router
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	testRouter(testServer()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestHandleRender(t *testing.T) {
	reqBody, _ := json.Marshal(pipeline.Options{
		Markup:  `<TextView text="hi" background="#336699"/>`,
		Formats: []string{"png", "json"},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(reqBody))
	testRouter(testServer()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.NodeCount != 1 {
		t.Errorf("node_count = %d, want 1", resp.NodeCount)
	}
	if resp.Width != 14 || resp.Height != 16 {
		t.Errorf("frame = %gx%g, want 14x16", resp.Width, resp.Height)
	}
	if resp.TreeHash == "" {
		t.Error("tree_hash is empty")
	}

	// PNG artifact is base64 and starts with the PNG signature.
	png, err := base64.StdEncoding.DecodeString(resp.Artifacts["png"])
	if err != nil {
		t.Fatalf("png artifact is not base64: %v", err)
	}
	if !bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("png artifact missing signature")
	}

	// JSON artifact passes through as text.
	if !json.Valid([]byte(resp.Artifacts["json"])) {
		t.Error("json artifact is not valid JSON")
	}
}

func TestHandleRenderMarkupBody(t *testing.T) {
	body := `<TextView text="hi"/>`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/xml")
	testRouter(testServer()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.NodeCount != 1 {
		t.Errorf("node_count = %d, want 1", resp.NodeCount)
	}
	if _, ok := resp.Artifacts["png"]; !ok {
		t.Error("missing png artifact")
	}
}

func TestMarkupBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        bool
	}{
		{"xml content type", "application/xml", `<View/>`, true},
		{"no content type", "", `  <View/>`, true},
		{"json content type wins", "application/json", `<View/>`, false},
		{"json braces", "", `{"markup":"<View/>"}`, false},
		{"empty body", "application/xml", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markupBody(tt.contentType, []byte(tt.body)); got != tt.want {
				t.Errorf("markupBody(%q, %q) = %v, want %v", tt.contentType, tt.body, got, tt.want)
			}
		})
	}
}

func TestHandleRenderConfigFormats(t *testing.T) {
	s := testServer()
	s.defaults = config.Defaults{Formats: []string{"json"}}

	reqBody, _ := json.Marshal(pipeline.Options{Markup: `<TextView text="hi"/>`})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(reqBody))
	testRouter(s).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if _, ok := resp.Artifacts["json"]; !ok {
		t.Error("configured json format was not produced")
	}
	if _, ok := resp.Artifacts["png"]; ok {
		t.Error("png produced despite configured formats")
	}
}

func TestHandleRenderAcceptImage(t *testing.T) {
	reqBody, _ := json.Marshal(pipeline.Options{
		Markup: `<TextView text="hi"/>`,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(reqBody))
	req.Header.Set("Accept", "image/png")
	testRouter(testServer()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("body is not a PNG")
	}
}

func TestHandleRenderBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"markup":`},
		{"missing markup", `{}`},
		{"broken markup", `{"markup":"<View"}`},
		{"bad format", `{"markup":"<View/>","formats":["gif"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader([]byte(tt.body)))
			testRouter(testServer()).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error response is not JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}
