package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"media_syncer/internal/domain"
	"media_syncer/internal/scheduler"
)

type errorResponse struct {
	Error string `json:"error"`
}

type submitResponse struct {
	Job   string `json:"job"`
	RunID string `json:"run_id"`
}

type jobResponse struct {
	Name    string       `json:"name"`
	Running bool         `json:"running"`
	LastRun *runResponse `json:"last_run,omitempty"`
}

type stateResponse struct {
	Name    string `json:"name"`
	Running bool   `json:"running"`
}

type runResponse struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
}

type contentResponse struct {
	Kind             string     `json:"kind"`
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Overview         string     `json:"overview,omitempty"`
	PosterURL        string     `json:"poster_url,omitempty"`
	PosterModifiedAt *time.Time `json:"poster_modified_at,omitempty"`
	Favorite         bool       `json:"favorite"`
	InList           bool       `json:"in_list"`
	Popularity       float64    `json:"popularity"`
	VoteCount        int        `json:"vote_count"`
	Genres           []string   `json:"genres"`
	Companies        []string   `json:"production_companies"`
	ReleaseDate      *time.Time `json:"release_date,omitempty"`
	Status           string     `json:"status,omitempty"`
	ExternalURL      string     `json:"external_url,omitempty"`
	OriginalLanguage string     `json:"original_language,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type refreshResponse struct {
	Outcome  string          `json:"outcome"`
	Credits  int             `json:"credits"`
	Trailers int             `json:"trailers"`
	Errors   int             `json:"errors"`
	Content  contentResponse `json:"content"`
}

type browseResponse struct {
	Items  []contentResponse `json:"items"`
	Errors int               `json:"errors"`
}

func newJobResponse(st scheduler.Status) jobResponse {
	resp := jobResponse{Name: st.Name, Running: st.Running}
	if st.LastRun != nil {
		resp.LastRun = &runResponse{
			ID:         st.LastRun.ID,
			StartedAt:  st.LastRun.StartedAt,
			FinishedAt: st.LastRun.FinishedAt,
		}
		if st.LastRun.Err != nil {
			resp.LastRun.Error = st.LastRun.Err.Error()
		}
	}
	return resp
}

func newContentResponse(c *domain.Content) contentResponse {
	genres := c.Genres
	if genres == nil {
		genres = []string{}
	}
	companies := c.ProductionCompanies
	if companies == nil {
		companies = []string{}
	}
	return contentResponse{
		Kind:             string(c.Ref.Kind),
		ID:               c.Ref.ID,
		Title:            c.Title,
		Overview:         c.Overview,
		PosterURL:        c.PosterURL,
		PosterModifiedAt: c.PosterModifiedAt,
		Favorite:         c.Favorite,
		InList:           c.InList,
		Popularity:       c.Popularity,
		VoteCount:        c.VoteCount,
		Genres:           genres,
		Companies:        companies,
		ReleaseDate:      c.ReleaseDate,
		Status:           string(c.Status),
		ExternalURL:      c.ExternalURL,
		OriginalLanguage: c.OriginalLanguage,
		UpdatedAt:        c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
