package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Vaflel/shift-cleaner/domain"
	"github.com/Vaflel/shift-cleaner/usecases"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Server struct {
	opts      usecases.Options
	loader    usecases.RosterLoader
	writer    usecases.WorkbookWriter
	cache     *ResultCache
	maxUpload int64
	router    *chi.Mux
	server    *http.Server
	logger    *zap.Logger
}

// ProcessResponse ответ на загрузку графика
type ProcessResponse struct {
	ID          string   `json:"id"`
	Filename    string   `json:"filename"`
	Sheets      []string `json:"sheets"`
	DownloadURL string   `json:"download_url"`
	Preview     *Preview `json:"preview,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(opts usecases.Options, loader usecases.RosterLoader, writer usecases.WorkbookWriter,
	cache *ResultCache, maxUpload int64, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewResultCache(30 * time.Minute)
	}
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}

	s := &Server{
		opts:      opts,
		loader:    loader,
		writer:    writer,
		cache:     cache,
		maxUpload: maxUpload,
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/process", s.handleProcess)
	s.router.Get("/api/results/{id}", s.handleDownload)

	return s
}

// Router обработчик со всеми маршрутами
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server started", zap.String("url", "http://localhost"+addr))

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "field 'file' is required")
		return
	}
	defer file.Close()

	opts := s.opts
	if raw := r.FormValue("mode"); raw != "" {
		mode, err := domain.ParseTimeMode(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Mode = mode
	}

	name := filepath.Base(header.Filename)
	service := usecases.NewCleaningService(opts, s.logger.With(zap.String("file", name)))
	result, err := service.Load(r.Context(), s.loader, file, name)
	if err != nil {
		if domain.IsInputError(err) {
			s.logger.Warn("rejected input", zap.String("file", name), zap.Error(err))
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("processing failed", zap.String("file", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	var buf bytes.Buffer
	if err := s.writer.Write(&buf, result.Workbook); err != nil {
		s.logger.Error("failed to write workbook", zap.String("file", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	id := uuid.NewString()
	s.cache.Set(id, StoredResult{
		Filename: result.Workbook.Filename,
		Data:     buf.Bytes(),
		Workbook: result.Workbook,
	})

	resp := ProcessResponse{
		ID:          id,
		Filename:    result.Workbook.Filename,
		Sheets:      result.Workbook.SheetNames(),
		DownloadURL: "/api/results/" + id,
	}
	if sheet, ok := LastSheet(result.Workbook); ok {
		preview := PreviewRows(sheet, DefaultPreviewRows)
		resp.Preview = &preview
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stored, ok := s.cache.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "result not found or expired")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stored.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(stored.Data)))
	if _, err := w.Write(stored.Data); err != nil {
		s.logger.Warn("download interrupted", zap.String("id", id), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
