package catalog

import (
	"strings"
	"time"

	"media_syncer/internal/domain"
)

type contentResponse struct {
	ID                  int64         `json:"id"`
	Title               string        `json:"title"`
	Name                string        `json:"name"`
	Overview            string        `json:"overview"`
	PosterPath          string        `json:"poster_path"`
	Popularity          float64       `json:"popularity"`
	VoteCount           int           `json:"vote_count"`
	Genres              []namedEntity `json:"genres"`
	ProductionCompanies []namedEntity `json:"production_companies"`
	ReleaseDate         string        `json:"release_date"`
	FirstAirDate        string        `json:"first_air_date"`
	Status              string        `json:"status"`
	Homepage            string        `json:"homepage"`
	OriginalLanguage    string        `json:"original_language"`
}

type namedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type pageResponse struct {
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Results    []contentResponse `json:"results"`
}

type creditsResponse struct {
	Cast []castMember `json:"cast"`
	Crew []crewMember `json:"crew"`
}

type castMember struct {
	CreditID  string `json:"credit_id"`
	PersonID  *int64 `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     *int   `json:"order"`
}

type crewMember struct {
	CreditID   string `json:"credit_id"`
	PersonID   *int64 `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

type videosResponse struct {
	Results []video `json:"results"`
}

type video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    *bool  `json:"official"`
	PublishedAt string `json:"published_at"`
}

func (r contentResponse) toDomain(kind domain.ContentKind, imageBaseURL string) domain.Content {
	c := domain.Content{
		Ref:              domain.ContentRef{Kind: kind, ID: r.ID},
		Title:            r.Title,
		Overview:         r.Overview,
		Popularity:       r.Popularity,
		VoteCount:        r.VoteCount,
		Genres:           names(r.Genres),
		Status:           parseStatus(r.Status),
		ExternalURL:      r.Homepage,
		OriginalLanguage: r.OriginalLanguage,
	}
	if c.Title == "" {
		c.Title = r.Name
	}
	if len(r.ProductionCompanies) > 0 {
		c.ProductionCompanies = names(r.ProductionCompanies)
	}
	if r.PosterPath != "" {
		c.PosterURL = imageBaseURL + r.PosterPath
	}

	released := r.ReleaseDate
	if released == "" {
		released = r.FirstAirDate
	}
	if t, err := time.Parse(time.DateOnly, released); err == nil {
		c.ReleaseDate = &t
	}

	return c
}

func (r creditsResponse) toDomain(ref domain.ContentRef) []domain.Credit {
	credits := make([]domain.Credit, 0, len(r.Cast)+len(r.Crew))
	for _, m := range r.Cast {
		credits = append(credits, domain.Credit{
			ID:         m.CreditID,
			Content:    ref,
			PersonID:   m.PersonID,
			PersonName: m.Name,
			Character:  m.Character,
			Order:      m.Order,
		})
	}
	for _, m := range r.Crew {
		credits = append(credits, domain.Credit{
			ID:         m.CreditID,
			Content:    ref,
			PersonID:   m.PersonID,
			PersonName: m.Name,
			IsCrew:     true,
			Department: m.Department,
			Job:        m.Job,
		})
	}
	return credits
}

func (v video) toDomain(ref domain.ContentRef) domain.Trailer {
	t := domain.Trailer{
		ID:       v.ID,
		Content:  ref,
		Name:     v.Name,
		Key:      v.Key,
		Site:     v.Site,
		Type:     v.Type,
		Official: v.Official,
	}
	if published, err := time.Parse(time.RFC3339, v.PublishedAt); err == nil {
		t.PublishedAt = &published
	}
	return t
}

func names(entities []namedEntity) []string {
	if len(entities) == 0 {
		return nil
	}
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			out = append(out, e.Name)
		}
	}
	return out
}

var knownStatuses = map[domain.ContentStatus]bool{
	domain.StatusRumored:         true,
	domain.StatusPlanned:         true,
	domain.StatusInProduction:    true,
	domain.StatusPostProduction:  true,
	domain.StatusReleased:        true,
	domain.StatusReturningSeries: true,
	domain.StatusEnded:           true,
	domain.StatusCanceled:        true,
}

// parseStatus maps catalog labels like "Returning Series" onto the status enum.
func parseStatus(s string) domain.ContentStatus {
	status := domain.ContentStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	if status == "cancelled" {
		status = domain.StatusCanceled
	}
	if !knownStatuses[status] {
		return domain.StatusUnknown
	}
	return status
}
