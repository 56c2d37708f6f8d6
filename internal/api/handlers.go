package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joshhsoj1902/steam-library-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-library-exporter/internal/render"
	"github.com/joshhsoj1902/steam-library-exporter/internal/store"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	outputDir string
	summaries SummaryStore
}

// SummaryStore is implemented by store.Store. A nil SummaryStore disables
// the summary API.
type SummaryStore interface {
	Summary(ctx context.Context, steamId string) ([]byte, error)
}

func NewHandlers(outputDir string, summaries SummaryStore) *Handlers {
	return &Handlers{
		outputDir: outputDir,
		summaries: summaries,
	}
}

// HandleRoot redirects to the rendered summary page
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+render.SummaryFileName, http.StatusFound)
}

// HandleMetrics serves only steam_* metrics
func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	logger.Log.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"method": r.Method,
		"ip":     r.RemoteAddr,
	}).Debug("Metrics request received")

	SteamHandler().ServeHTTP(w, r)
}

// HandleSummary handles /api/summary/{steam_id}
func (h *Handlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	steamId := chi.URLParam(r, "steam_id")

	logger.Log.WithFields(logrus.Fields{
		"path":     r.URL.Path,
		"method":   r.Method,
		"steam_id": steamId,
		"ip":       r.RemoteAddr,
	}).Info("Summary request received")

	if h.summaries == nil {
		http.Error(w, "summary store not configured - set REDIS_ADDR", http.StatusServiceUnavailable)
		return
	}

	data, err := h.summaries.Summary(r.Context(), steamId)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "no summary for steam_id "+steamId, http.StatusNotFound)
			return
		}
		logger.Log.WithFields(logrus.Fields{
			"steam_id": steamId,
			"error":    err.Error(),
		}).Error("Failed to read summary")
		http.Error(w, "failed to read summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(data)
}

// FileServer serves the rendered output directory
func (h *Handlers) FileServer() http.Handler {
	return http.FileServer(http.Dir(h.outputDir))
}
