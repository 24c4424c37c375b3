package publisher

import (
	"time"

	"media_syncer/internal/domain"
)

// ContentMessage announces a reconciled content change to other devices.
type ContentMessage struct {
	Action    string         `json:"action"` // "inserted" or "updated"
	Content   ContentPayload `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
}

type ContentPayload struct {
	Kind                string     `json:"kind"`
	RemoteID            int64      `json:"remote_id"`
	Title               string     `json:"title"`
	Overview            string     `json:"overview,omitempty"`
	PosterURL           string     `json:"poster_url,omitempty"`
	PosterModifiedAt    *time.Time `json:"poster_modified_at,omitempty"`
	Favorite            bool       `json:"favorite"`
	InList              bool       `json:"in_list"`
	Popularity          float64    `json:"popularity"`
	VoteCount           int        `json:"vote_count"`
	Genres              []string   `json:"genres,omitempty"`
	ProductionCompanies []string   `json:"production_companies,omitempty"`
	ReleaseDate         *time.Time `json:"release_date,omitempty"`
	Status              string     `json:"status,omitempty"`
	ExternalURL         string     `json:"external_url,omitempty"`
	OriginalLanguage    string     `json:"original_language,omitempty"`
}

func newContentMessage(c *domain.Content, outcome domain.ReconcileOutcome, now time.Time) ContentMessage {
	return ContentMessage{
		Action: string(outcome),
		Content: ContentPayload{
			Kind:                string(c.Ref.Kind),
			RemoteID:            c.Ref.ID,
			Title:               c.Title,
			Overview:            c.Overview,
			PosterURL:           c.PosterURL,
			PosterModifiedAt:    c.PosterModifiedAt,
			Favorite:            c.Favorite,
			InList:              c.InList,
			Popularity:          c.Popularity,
			VoteCount:           c.VoteCount,
			Genres:              c.Genres,
			ProductionCompanies: c.ProductionCompanies,
			ReleaseDate:         c.ReleaseDate,
			Status:              string(c.Status),
			ExternalURL:         c.ExternalURL,
			OriginalLanguage:    c.OriginalLanguage,
		},
		Timestamp: now.UTC(),
	}
}

// routingKey is "<prefix>.<kind>.<outcome>", e.g. "content.movie.updated".
func routingKey(prefix string, ref domain.ContentRef, outcome domain.ReconcileOutcome) string {
	return prefix + "." + string(ref.Kind) + "." + string(outcome)
}
