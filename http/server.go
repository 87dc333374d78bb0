package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/leanscrap"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout is the time given for outstanding requests to finish before shutdown.
const ShutdownTimeout = 5 * time.Second

// Server serves the leanscrap JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address to open.
	Addr string

	// Services used by the handlers. Articles and Metrics are optional.
	Scraper  leanscrap.ArticleScraper
	Articles leanscrap.ArticleService
	Metrics  http.Handler

	Logger *slog.Logger
}

// NewServer returns a new Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: chi.NewRouter(),
		Logger: slog.New(slog.DiscardHandler),
	}
	s.server.Handler = s.router

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/metrics", s.handleMetrics)

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/article", s.handleScrapeArticle)
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", s.handleListArticles)
			r.Post("/", s.handleSaveArticle)
			r.Get("/{id}", s.handleGetArticle)
			r.Delete("/{id}", s.handleDeleteArticle)
		})
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open starts listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.Metrics == nil {
		http.NotFound(w, r)
		return
	}
	s.Metrics.ServeHTTP(w, r)
}

// handleScrapeArticle scrapes the page named by the url query parameter.
func (s *Server) handleScrapeArticle(w http.ResponseWriter, r *http.Request) {
	u, err := leanscrap.ParseArticleURL(r.URL.Query().Get("url"))
	if err != nil {
		s.Error(w, r, err)
		return
	}

	article, err := s.Scraper.ScrapArticle(r.Context(), u)
	if err != nil {
		s.scrapeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, article)
}

type saveArticleRequest struct {
	URL string `json:"url"`
}

// handleSaveArticle scrapes the requested page and stores the result.
func (s *Server) handleSaveArticle(w http.ResponseWriter, r *http.Request) {
	if s.Articles == nil {
		http.NotFound(w, r)
		return
	}

	var req saveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, r, leanscrap.Errorf(leanscrap.EINVALID, "invalid JSON body"))
		return
	}

	u, err := leanscrap.ParseArticleURL(req.URL)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	article, err := s.Scraper.ScrapArticle(r.Context(), u)
	if err != nil {
		s.scrapeError(w, r, err)
		return
	}

	stored, err := s.Articles.SaveArticle(r.Context(), article)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	if s.Articles == nil {
		http.NotFound(w, r)
		return
	}

	var filter leanscrap.ArticleFilter
	q := r.URL.Query()
	if v := q.Get("author"); v != "" {
		filter.AuthorName = &v
	}
	if v := q.Get("url"); v != "" {
		filter.OriginalURL = &v
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.Error(w, r, leanscrap.Errorf(leanscrap.EINVALID, "invalid limit %q", v))
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.Error(w, r, leanscrap.Errorf(leanscrap.EINVALID, "invalid offset %q", v))
			return
		}
		filter.Offset = n
	}

	articles, err := s.Articles.FindArticles(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if articles == nil {
		articles = []*leanscrap.StoredArticle{}
	}

	writeJSON(w, http.StatusOK, articles)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	if s.Articles == nil {
		http.NotFound(w, r)
		return
	}

	stored, err := s.Articles.FindArticleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	if s.Articles == nil {
		http.NotFound(w, r)
		return
	}

	if err := s.Articles.DeleteArticle(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error   string             `json:"error"`
	URL     string             `json:"url,omitempty"`
	Reasons []leanscrap.Reason `json:"reasons,omitempty"`
}

// scrapeError reports a failed scrape. Errors that are not application
// errors come from fetching the page and are reported as a bad gateway.
func (s *Server) scrapeError(w http.ResponseWriter, r *http.Request, err error) {
	if leanscrap.ErrorCode(err) == leanscrap.EINTERNAL {
		s.Logger.Warn("scrape failed", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "failed to fetch page: " + err.Error()})
		return
	}
	s.Error(w, r, err)
}

// Error writes err as a JSON response with a status derived from its code.
// Article errors report missing fields as 422 and broken pages as 502.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := leanscrap.ErrorCode(err)
	status := ErrorStatusCode(code)
	if code == leanscrap.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	var ae *leanscrap.ArticleError
	if errors.As(err, &ae) {
		status = http.StatusUnprocessableEntity
		if ae.Has(leanscrap.URLBroken) {
			status = http.StatusBadGateway
		}
		resp := ErrorResponse{Error: ae.Error(), Reasons: ae.Reasons}
		if ae.URL != nil {
			resp.URL = ae.URL.String()
		}
		writeJSON(w, status, resp)
		return
	}

	writeJSON(w, status, ErrorResponse{Error: leanscrap.ErrorMessage(err)})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	leanscrap.ECONFLICT:    http.StatusConflict,
	leanscrap.EINVALID:     http.StatusBadRequest,
	leanscrap.ENOTFOUND:    http.StatusNotFound,
	leanscrap.EUNAVAILABLE: http.StatusBadGateway,
	leanscrap.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
