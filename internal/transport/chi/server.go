package chi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domdoc "github.com/katoyeung/data-node/internal/domain/document"
	"github.com/katoyeung/data-node/internal/domain/schema"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	"github.com/katoyeung/data-node/internal/domain/search/result"
	"github.com/katoyeung/data-node/internal/format"
	"github.com/katoyeung/data-node/internal/logger"
	healthuc "github.com/katoyeung/data-node/internal/usecase/health"
	indexuc "github.com/katoyeung/data-node/internal/usecase/index"
)

// Operation tags prefixed to error messages.
const (
	tagInfo   = "Info"
	tagFTInfo = "FT.INFO"
	tagAdd    = "Add"
	tagSearch = "Search"
	tagIndex  = "Index"
	tagDelete = "Delete"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 32 << 20

// Documents ingests and deletes documents.
type Documents interface {
	Ingest(ctx context.Context, doc domdoc.Document) (string, error)
	IngestBatch(ctx context.Context, docs []domdoc.Document) ([]string, error)
	Delete(ctx context.Context, keys []string, source string) (int64, error)
}

// Searcher runs searches.
type Searcher interface {
	Search(ctx context.Context, q *query.Query) (result.Result, error)
}

// Indexes manages index definitions.
type Indexes interface {
	Define(ctx context.Context, s *schema.Schema) (indexuc.Outcome, error)
	Info(ctx context.Context, name string) ([]any, error)
}

// StatusReader reports server status.
type StatusReader interface {
	Server(ctx context.Context) (map[string]string, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers.
type Server struct {
	documents Documents
	search    Searcher
	indexes   Indexes
	status    StatusReader
	health    HealthChecker
	logger    *zap.Logger

	queryDefaults query.Defaults
	maxBodyBytes  int64
	now           func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithQueryDefaults sets the fallbacks for omitted search parameters.
func WithQueryDefaults(d query.Defaults) Option {
	return func(s *Server) { s.queryDefaults = d }
}

// WithMaxBodyBytes caps request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates an HTTP API server.
func NewServer(
	documents Documents,
	search Searcher,
	indexes Indexes,
	status StatusReader,
	health HealthChecker,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		documents:    documents,
		search:       search,
		indexes:      indexes,
		status:       status,
		health:       health,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Hello)
	r.Get("/status", s.ServerStatus)
	r.Get("/status/{index}", s.IndexStatus)
	r.Post("/add", s.Add)
	r.Post("/search", s.Search)
	r.Get("/search", s.SearchQuery)
	r.Post("/index", s.DefineIndex)
	r.Post("/delete", s.Delete)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Hello handles GET /.
func (s *Server) Hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "Hello world! %s", s.now().Local().Format("2006-01-02 15:04:05"))
}

// ServerStatus handles GET /status.
func (s *Server) ServerStatus(w http.ResponseWriter, r *http.Request) {
	info, err := s.status.Server(r.Context())
	if err != nil {
		s.handleError(w, r, tagInfo, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// IndexStatus handles GET /status/{index}.
func (s *Server) IndexStatus(w http.ResponseWriter, r *http.Request) {
	var index string
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.handleError(w, r, tagFTInfo, fmt.Errorf("invalid format for parameter index: %w", err))
		return
	}

	info, err := s.indexes.Info(r.Context(), index)
	if err != nil {
		s.handleError(w, r, tagFTInfo, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Add handles POST /add.
func (s *Server) Add(w http.ResponseWriter, r *http.Request) {
	parser, err := format.ParserFor(r.Header.Get("Content-Type"))
	if err != nil {
		s.handleError(w, r, tagAdd, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		s.handleError(w, r, tagAdd, fmt.Errorf("read body: %w", err))
		return
	}

	payload, err := parser.Parse(body)
	if err != nil {
		s.handleError(w, r, tagAdd, err)
		return
	}

	if !payload.Batch {
		key, err := s.documents.Ingest(r.Context(), payload.Docs[0])
		if err != nil {
			s.handleError(w, r, tagAdd, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "success", Key: key})
		return
	}

	keys, err := s.documents.IngestBatch(r.Context(), payload.Docs)
	if err != nil {
		s.handleError(w, r, tagAdd, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Keys: keys})
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, tagSearch, err)
		return
	}
	s.runSearch(w, r, &req)
}

// SearchQuery handles GET /search with the same parameters as query-string fields.
func (s *Server) SearchQuery(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := bindSearchQuery(r, &req); err != nil {
		s.handleError(w, r, tagSearch, err)
		return
	}
	s.runSearch(w, r, &req)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, req *searchRequest) {
	q, err := query.New(req.params(), s.queryDefaults)
	if err != nil {
		s.handleError(w, r, tagSearch, err)
		return
	}

	ctx := logger.WithFields(r.Context(), zap.String("index", q.Index()))
	res, err := s.search.Search(ctx, &q)
	if err != nil {
		s.handleError(w, r, tagSearch, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponseFrom(&res))
}

// DefineIndex handles POST /index.
func (s *Server) DefineIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, tagIndex, err)
		return
	}

	out, err := s.indexes.Define(r.Context(), req.schema())
	if err != nil {
		s.handleError(w, r, tagIndex, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: out.Status, Message: out.Message})
}

// Delete handles POST /delete.
func (s *Server) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, tagDelete, err)
		return
	}

	n, err := s.documents.Delete(r.Context(), req.Keys, req.Source)
	if err != nil {
		s.handleError(w, r, tagDelete, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success", Deleted: &n})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dest any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, tag string, err error) {
	logger.FromContextOr(r.Context(), s.logger).Warn("request failed", zap.String("operation", tag), zap.Error(err))
	writeError(w, tag, err)
}
