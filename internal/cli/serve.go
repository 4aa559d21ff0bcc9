package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mfeldt/renderbox/pkg/buildinfo"
	"github.com/mfeldt/renderbox/pkg/config"
	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/markup"
	"github.com/mfeldt/renderbox/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			res, err := resourcesFromConfig(cfg)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := &server{
				runner:    runner,
				resources: res,
				defaults:  cfg.Defaults,
				logger:    c.Logger,
			}
			return srv.run(cmd.Context(), cfg.Server.Listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the pipeline cache")

	return cmd
}

// server is the HTTP API around a pipeline runner.
type server struct {
	runner    *pipeline.Runner
	resources *markup.Resources
	defaults  config.Defaults
	logger    *log.Logger
}

// renderResponse is the JSON body for a successful render.
type renderResponse struct {
	TreeHash  string            `json:"tree_hash"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	NodeCount int               `json:"node_count"`
	Cached    bool              `json:"cached"`
	Artifacts map[string]string `json:"artifacts"`
}

// errorResponse is the JSON body for a failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *server) run(ctx context.Context, listen string) error {
	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(chimiddleware.Recoverer)
	router.Get("/healthz", s.handleHealth)
	router.Post("/render", s.handleRender)

	httpSrv := &http.Server{
		Addr:         listen,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", listen)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	var opts pipeline.Options
	if markupBody(r.Header.Get("Content-Type"), body) {
		opts.Markup = string(body)
	} else if err := json.Unmarshal(body, &opts); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	applyDefaults(&opts, s.defaults)
	opts.Resources = s.resources
	opts.Logger = s.logger.With("request_id", requestIDFrom(r.Context()))

	wantImage := r.Header.Get("Accept") == "image/png"
	if wantImage && !slices.Contains(opts.Formats, pipeline.FormatPNG) {
		opts.Formats = append(opts.Formats, pipeline.FormatPNG)
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if wantImage {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[pipeline.FormatPNG])
		return
	}

	resp := renderResponse{
		TreeHash:  result.TreeHash,
		Width:     result.Layout.Frame.Width,
		Height:    result.Layout.Frame.Height,
		NodeCount: result.Stats.NodeCount,
		Cached:    result.CacheInfo.RenderHit,
		Artifacts: encodeArtifacts(result.Artifacts),
	}
	writeJSON(w, http.StatusOK, resp)
}

// markupBody reports whether a request carries a raw markup document
// rather than JSON options. JSON content types always decode as options;
// anything else opening with an element is taken as markup.
func markupBody(contentType string, body []byte) bool {
	if strings.Contains(contentType, "json") {
		return false
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// encodeArtifacts makes artifact payloads JSON-safe. Text formats pass
// through; binary formats are base64-encoded.
func encodeArtifacts(artifacts map[string][]byte) map[string]string {
	out := make(map[string]string, len(artifacts))
	for format, data := range artifacts {
		switch format {
		case pipeline.FormatB64, pipeline.FormatJSON:
			out[format] = string(data)
		default:
			out[format] = base64.StdEncoding.EncodeToString(data)
		}
	}
	return out
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMarkup, errors.ErrCodeInvalidAttribute,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidResource, errors.ErrCodeUnknownResource:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns each request a UUID for log correlation and echoes
// it in the X-Request-Id response header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// requestIDFrom retrieves the request ID, or empty when unset.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
