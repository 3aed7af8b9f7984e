// Package server exposes the hubscan HTTP surface: the embedded browser
// UI, the JSON API it consumes, and the usual health and metrics
// endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hubscan/internal/frontend"
	"hubscan/internal/hubcache"
	"hubscan/internal/metrics"
	"hubscan/internal/storage"
)

// HistoryStore is the slice of the storage layer the server needs for the
// scan history log. A nil store disables history without disabling scans.
type HistoryStore interface {
	RecordScan(ctx context.Context, rec storage.ScanRecord) error
	RecentScans(ctx context.Context, limit int) ([]storage.ScanRecord, error)
	Prune(ctx context.Context, keep int) error
}

// Server holds the most recent snapshot and serves it over HTTP. The
// snapshot is presentation-layer state only: every refresh replaces it
// wholesale with the result of a fresh blocking scan.
type Server struct {
	scanRoot    string
	history     HistoryStore
	historyKeep int
	renderer    *frontend.Renderer

	mu   sync.RWMutex
	snap *hubcache.Snapshot

	// Serializes refreshes; scans stay synchronous by design.
	scanMu sync.Mutex
}

// New creates a Server scanning scanRoot. history may be nil.
func New(scanRoot string, history HistoryStore, historyKeep int, renderer *frontend.Renderer) *Server {
	return &Server{
		scanRoot:    scanRoot,
		history:     history,
		historyKeep: historyKeep,
		renderer:    renderer,
	}
}

// Refresh performs one full scan and installs the result as the current
// snapshot. The call blocks for the duration of the walk.
func (s *Server) Refresh(ctx context.Context) (*hubcache.Snapshot, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	snap, err := hubcache.BuildSnapshot(s.scanRoot)
	if err != nil {
		metrics.ScanErrors.Inc()
		return nil, err
	}

	metrics.ScansTotal.Inc()
	metrics.ScanDuration.Observe(snap.Duration.Seconds())
	metrics.CacheBytes.Set(float64(snap.TotalBytes))
	metrics.CacheModels.Set(float64(snap.ModelCount))

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.recordHistory(ctx, snap)

	slog.Info("cache scanned",
		"root", s.scanRoot,
		"orgs", len(snap.Orgs),
		"models", snap.ModelCount,
		"total", snap.TotalHuman(hubcache.FormatAuto),
		"duration", snap.Duration)
	return snap, nil
}

func (s *Server) recordHistory(ctx context.Context, snap *hubcache.Snapshot) {
	if s.history == nil {
		return
	}

	rec := storage.ScanRecord{
		ID:         snap.ID,
		ScannedAt:  snap.TakenAt,
		Root:       snap.Root,
		OrgCount:   len(snap.Orgs),
		ModelCount: snap.ModelCount,
		TotalBytes: snap.TotalBytes,
		Duration:   snap.Duration,
	}
	if err := s.history.RecordScan(ctx, rec); err != nil {
		slog.Warn("record scan history", "error", err)
		return
	}
	if err := s.history.Prune(ctx, s.historyKeep); err != nil {
		slog.Warn("prune scan history", "error", err)
	}
}

// current returns the held snapshot, or nil before the first scan.
func (s *Server) current() *hubcache.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Routes returns the HTTP handler exposing all application endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/", s.handleIndex)
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Post("/api/refresh", s.handleRefresh)
	r.Get("/api/orgs", s.handleOrgs)
	r.Get("/api/history", s.handleHistory)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", s.renderer.StaticHandler()))

	return r
}

// Start runs the HTTP server until the provided context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Root": s.scanRoot,
	}
	if err := s.renderer.RenderIndex(w, data); err != nil {
		http.Error(w, fmt.Sprintf("render page: %v", err), http.StatusInternalServerError)
	}
}

// snapshotPayload is the row-oriented shape the UI consumes.
type snapshotPayload struct {
	ID         string         `json:"id"`
	Root       string         `json:"root"`
	TakenAt    time.Time      `json:"takenAt"`
	Rows       []hubcache.Row `json:"rows"`
	ModelCount int            `json:"modelCount"`
	TotalBytes int64          `json:"totalBytes"`
	Total      string         `json:"total"`
}

func buildPayload(snap *hubcache.Snapshot) snapshotPayload {
	return snapshotPayload{
		ID:         snap.ID,
		Root:       snap.Root,
		TakenAt:    snap.TakenAt,
		Rows:       snap.Rows(hubcache.FormatAuto),
		ModelCount: snap.ModelCount,
		TotalBytes: snap.TotalBytes,
		Total:      snap.TotalHuman(hubcache.FormatAuto),
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	if snap == nil {
		http.Error(w, "no scan has completed yet", http.StatusServiceUnavailable)
		return
	}

	if org := r.URL.Query().Get("org"); org != "" {
		snap = hubcache.FilterByOrganization(snap, org)
	}
	writeJSON(w, http.StatusOK, buildPayload(snap))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Refresh(r.Context())
	if err != nil {
		var accessErr *hubcache.AccessError
		if errors.As(err, &accessErr) {
			http.Error(w, accessErr.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, fmt.Sprintf("scan failed: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, buildPayload(snap))
}

func (s *Server) handleOrgs(w http.ResponseWriter, _ *http.Request) {
	snap := s.current()
	if snap == nil {
		http.Error(w, "no scan has completed yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"organizations": snap.Organizations()})
}

type historyRow struct {
	ID         string    `json:"id"`
	ScannedAt  time.Time `json:"scannedAt"`
	Root       string    `json:"root"`
	OrgCount   int       `json:"orgCount"`
	ModelCount int       `json:"modelCount"`
	TotalBytes int64     `json:"totalBytes"`
	Total      string    `json:"total"`
	DurationMS int64     `json:"durationMs"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, map[string]any{"scans": []historyRow{}})
		return
	}

	records, err := s.history.RecentScans(r.Context(), 20)
	if err != nil {
		http.Error(w, fmt.Sprintf("load history: %v", err), http.StatusInternalServerError)
		return
	}

	rows := make([]historyRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, historyRow{
			ID:         rec.ID,
			ScannedAt:  rec.ScannedAt,
			Root:       rec.Root,
			OrgCount:   rec.OrgCount,
			ModelCount: rec.ModelCount,
			TotalBytes: rec.TotalBytes,
			Total:      hubcache.FormatSize(rec.TotalBytes, hubcache.FormatAuto),
			DurationMS: rec.Duration.Milliseconds(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scans": rows})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("encode response", "error", err)
	}
}
