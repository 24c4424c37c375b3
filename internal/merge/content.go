// Package merge holds the field policies that decide how a catalog record is
// folded into the local record for the same identifier. Every function here
// is pure: no I/O, no clock reads.
package merge

import (
	"slices"
	"strings"
	"time"

	"media_syncer/internal/domain"
)

type Options struct {
	// ManualRefresh is set when the user asked for this record to be refreshed.
	ManualRefresh bool
	// HasCustomCover reports that a user supplied cover file exists for the record.
	HasCustomCover bool
	// Now is the timestamp written when the cover is considered modified.
	Now time.Time
}

// Content merges incoming catalog data into existing. A nil existing returns
// incoming as a fresh record with the client owned flags cleared.
func Content(existing *domain.Content, incoming domain.Content, opts Options) domain.Content {
	if existing == nil {
		merged := incoming
		merged.ID = 0
		merged.Favorite = false
		merged.InList = false
		merged.Genres = cloneStrings(incoming.Genres)
		merged.ProductionCompanies = cloneStrings(incoming.ProductionCompanies)
		merged.PosterModifiedAt = coverTimestamp("", nil, incoming.PosterURL, opts)
		return merged
	}

	merged := *existing
	merged.Genres = cloneStrings(existing.Genres)
	merged.ProductionCompanies = cloneStrings(existing.ProductionCompanies)

	merged.Popularity = pickFloat(incoming.Popularity, existing.Popularity)
	merged.VoteCount = pickInt(incoming.VoteCount, existing.VoteCount)

	if existing.Favorite {
		if len(existing.ProductionCompanies) == 0 && len(incoming.ProductionCompanies) > 0 {
			merged.ProductionCompanies = cloneStrings(incoming.ProductionCompanies)
		}
		return merged
	}

	merged.Title = pickString(incoming.Title, existing.Title)
	merged.Overview = pickString(incoming.Overview, existing.Overview)
	merged.PosterURL = pickString(incoming.PosterURL, existing.PosterURL)
	merged.PosterModifiedAt = coverTimestamp(existing.PosterURL, existing.PosterModifiedAt, incoming.PosterURL, opts)
	merged.ExternalURL = pickString(incoming.ExternalURL, existing.ExternalURL)
	merged.OriginalLanguage = pickString(incoming.OriginalLanguage, existing.OriginalLanguage)

	if incoming.Status != domain.StatusUnknown {
		merged.Status = incoming.Status
	}
	if incoming.ReleaseDate != nil {
		merged.ReleaseDate = cloneTime(incoming.ReleaseDate)
	}
	if len(incoming.Genres) > 0 {
		merged.Genres = cloneStrings(incoming.Genres)
	}
	if len(incoming.ProductionCompanies) > 0 {
		merged.ProductionCompanies = cloneStrings(incoming.ProductionCompanies)
	}

	return merged
}

// coverTimestamp returns the poster modification time to store. A new value is
// only produced for a non-empty incoming poster that was either explicitly
// refreshed or changed, and only when no custom cover would be masked.
func coverTimestamp(storedURL string, storedAt *time.Time, incomingURL string, opts Options) *time.Time {
	if strings.TrimSpace(incomingURL) == "" {
		return cloneTime(storedAt)
	}
	if !opts.ManualRefresh && incomingURL == storedURL {
		return cloneTime(storedAt)
	}
	if opts.HasCustomCover {
		return cloneTime(storedAt)
	}
	now := opts.Now
	return &now
}

// DiffContent lists the fields that differ between existing and merged.
func DiffContent(existing, merged domain.Content) domain.ContentUpdate {
	u := domain.ContentUpdate{Ref: existing.Ref}

	if merged.Title != existing.Title {
		u.Title = &merged.Title
	}
	if merged.Overview != existing.Overview {
		u.Overview = &merged.Overview
	}
	if merged.PosterURL != existing.PosterURL {
		u.PosterURL = &merged.PosterURL
	}
	if !timesEqual(merged.PosterModifiedAt, existing.PosterModifiedAt) && merged.PosterModifiedAt != nil {
		u.PosterModifiedAt = cloneTime(merged.PosterModifiedAt)
	}
	if merged.Favorite != existing.Favorite {
		u.Favorite = &merged.Favorite
	}
	if merged.InList != existing.InList {
		u.InList = &merged.InList
	}
	if merged.Popularity != existing.Popularity {
		u.Popularity = &merged.Popularity
	}
	if merged.VoteCount != existing.VoteCount {
		u.VoteCount = &merged.VoteCount
	}
	if !slices.Equal(merged.Genres, existing.Genres) && len(merged.Genres) > 0 {
		u.Genres = cloneStrings(merged.Genres)
	}
	if !slices.Equal(merged.ProductionCompanies, existing.ProductionCompanies) && len(merged.ProductionCompanies) > 0 {
		u.ProductionCompanies = cloneStrings(merged.ProductionCompanies)
	}
	if !timesEqual(merged.ReleaseDate, existing.ReleaseDate) && merged.ReleaseDate != nil {
		u.ReleaseDate = cloneTime(merged.ReleaseDate)
	}
	if merged.Status != existing.Status {
		u.Status = &merged.Status
	}
	if merged.ExternalURL != existing.ExternalURL {
		u.ExternalURL = &merged.ExternalURL
	}
	if merged.OriginalLanguage != existing.OriginalLanguage {
		u.OriginalLanguage = &merged.OriginalLanguage
	}

	return u
}

func pickString(incoming, existing string) string {
	if strings.TrimSpace(incoming) == "" {
		return existing
	}
	return incoming
}

func pickFloat(incoming, existing float64) float64 {
	if incoming == 0 {
		return existing
	}
	return incoming
}

func pickInt(incoming, existing int) int {
	if incoming == 0 {
		return existing
	}
	return incoming
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
