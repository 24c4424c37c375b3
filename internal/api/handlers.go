package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"media_syncer/internal/domain"
	"media_syncer/internal/service"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.DB.PingContext(ctx); err != nil {
			s.logger.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) syncFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := s.deps.Favorites
	runID := s.deps.Scheduler.Submit(service.FavoritesSyncJob, func(ctx context.Context) error {
		_, err := favorites.SyncFavorites(ctx)
		return err
	})
	s.accepted(w, service.FavoritesSyncJob, runID)
}

func (s *Server) syncList(w http.ResponseWriter, r *http.Request) {
	remoteID := chi.URLParam(r, "remoteID")
	lists := s.deps.Lists
	name := service.ListJobName(remoteID)
	runID := s.deps.Scheduler.Submit(name, func(ctx context.Context) error {
		_, err := lists.SyncList(ctx, remoteID)
		return err
	})
	s.accepted(w, name, runID)
}

func (s *Server) accepted(w http.ResponseWriter, job, runID string) {
	if runID == "" {
		writeError(w, http.StatusServiceUnavailable, "scheduler is shutting down")
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{Job: job, RunID: runID})
}

func (s *Server) jobStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newJobResponse(s.deps.Scheduler.Status(chi.URLParam(r, "name"))))
}

func (s *Server) cancelJob(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Scheduler.Cancel(chi.URLParam(r, "name")) {
		writeError(w, http.StatusNotFound, "job is not running")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := s.deps.Contents.Get(r.Context(), ref)
	if err != nil {
		s.logger.Error("failed to load content", "ref", ref.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load content")
		return
	}
	if content == nil {
		writeError(w, http.StatusNotFound, "content not found")
		return
	}
	writeJSON(w, http.StatusOK, newContentResponse(content))
}

func (s *Server) refreshContent(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.deps.Refresher.Refresh(r.Context(), ref)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "content not found in catalog")
		return
	case errors.Is(err, domain.ErrTransientFetch):
		writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	case err != nil:
		s.logger.Error("refresh failed", "ref", ref.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Outcome:  string(result.Outcome),
		Credits:  result.Credits,
		Trailers: result.Trailers,
		Errors:   result.Errors,
		Content:  newContentResponse(result.Content),
	})
}

// watchContent streams the record as server-sent events until the client goes away.
func (s *Server) watchContent(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := startStream(w)
	if !ok {
		return
	}

	for content := range s.deps.Watcher.Subscribe(r.Context(), ref) {
		if err := s.writeEvent(w, flusher, "content", newContentResponse(content)); err != nil {
			return
		}
	}
}

// watchJob streams the running state of a job, starting with the current one.
func (s *Server) watchJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	flusher, ok := startStream(w)
	if !ok {
		return
	}

	for running := range s.deps.Scheduler.IsRunning(r.Context(), name) {
		if err := s.writeEvent(w, flusher, "state", stateResponse{Name: name, Running: running}); err != nil {
			return
		}
	}
}

func startStream(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return flusher, true
}

func (s *Server) writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode event", "event", event, "error", err)
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

const (
	defaultBrowseLimit = 20
	maxBrowseLimit     = 200
)

// browse pages through the catalog until limit distinct items were stored.
func (s *Server) browse(w http.ResponseWriter, r *http.Request) {
	kind := domain.ContentKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown content kind %q", kind))
		return
	}

	q := r.URL.Query()
	limit := defaultBrowseLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = min(n, maxBrowseLimit)
	}

	query := domain.CatalogQuery{
		Kind:    kind,
		Search:  q.Get("query"),
		Listing: q.Get("listing"),
		Sort:    q.Get("sort"),
	}

	items := make([]contentResponse, 0, limit)
	failures := 0
	var lastErr error
	for content, err := range s.deps.Browser.Browse(r.Context(), query, service.NewBrowseSession()) {
		if err != nil {
			failures++
			lastErr = err
			s.logger.Warn("browse item failed", "kind", kind, "error", err)
			continue
		}
		items = append(items, newContentResponse(&content))
		if len(items) == limit {
			break
		}
	}

	if len(items) == 0 && lastErr != nil {
		if errors.Is(lastErr, domain.ErrTransientFetch) {
			writeError(w, http.StatusBadGateway, "catalog unavailable")
			return
		}
		writeError(w, http.StatusInternalServerError, "browse failed")
		return
	}

	writeJSON(w, http.StatusOK, browseResponse{Items: items, Errors: failures})
}

func parseRef(r *http.Request) (domain.ContentRef, error) {
	kind := domain.ContentKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		return domain.ContentRef{}, fmt.Errorf("unknown content kind %q", kind)
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return domain.ContentRef{}, fmt.Errorf("invalid content id %q", chi.URLParam(r, "id"))
	}
	return domain.ContentRef{Kind: kind, ID: id}, nil
}
