package domain

import (
	"fmt"
	"time"
)

type ContentKind string

const (
	KindMovie ContentKind = "movie"
	KindShow  ContentKind = "show"
)

func (k ContentKind) Valid() bool {
	return k == KindMovie || k == KindShow
}

// ContentRef identifies a catalog entry. The remote ID is only unique within its kind.
type ContentRef struct {
	Kind ContentKind
	ID   int64
}

func MovieRef(id int64) ContentRef { return ContentRef{Kind: KindMovie, ID: id} }
func ShowRef(id int64) ContentRef  { return ContentRef{Kind: KindShow, ID: id} }

func (r ContentRef) IsMovie() bool { return r.Kind == KindMovie }

func (r ContentRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

type ContentStatus string

const (
	StatusUnknown         ContentStatus = ""
	StatusRumored         ContentStatus = "rumored"
	StatusPlanned         ContentStatus = "planned"
	StatusInProduction    ContentStatus = "in_production"
	StatusPostProduction  ContentStatus = "post_production"
	StatusReleased        ContentStatus = "released"
	StatusReturningSeries ContentStatus = "returning_series"
	StatusEnded           ContentStatus = "ended"
	StatusCanceled        ContentStatus = "canceled"
)

// Content is the local record shared by movies and shows.
// Favorite and InList are owned by the client and never taken from catalog data.
type Content struct {
	ID                  int64
	Ref                 ContentRef
	Title               string
	Overview            string
	PosterURL           string
	PosterModifiedAt    *time.Time
	Favorite            bool
	InList              bool
	Popularity          float64
	VoteCount           int
	Genres              []string
	ProductionCompanies []string
	ReleaseDate         *time.Time
	Status              ContentStatus
	ExternalURL         string
	OriginalLanguage    string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ContentUpdate carries only changed fields. A nil field means "leave unchanged".
type ContentUpdate struct {
	Ref                 ContentRef
	Title               *string
	Overview            *string
	PosterURL           *string
	PosterModifiedAt    *time.Time
	Favorite            *bool
	InList              *bool
	Popularity          *float64
	VoteCount           *int
	Genres              []string
	ProductionCompanies []string
	ReleaseDate         *time.Time
	Status              *ContentStatus
	ExternalURL         *string
	OriginalLanguage    *string
}

func (u ContentUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Overview == nil &&
		u.PosterURL == nil &&
		u.PosterModifiedAt == nil &&
		u.Favorite == nil &&
		u.InList == nil &&
		u.Popularity == nil &&
		u.VoteCount == nil &&
		u.Genres == nil &&
		u.ProductionCompanies == nil &&
		u.ReleaseDate == nil &&
		u.Status == nil &&
		u.ExternalURL == nil &&
		u.OriginalLanguage == nil
}

// Apply returns a copy of c with every non-nil field of u written over it.
func (u ContentUpdate) Apply(c Content) Content {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Overview != nil {
		c.Overview = *u.Overview
	}
	if u.PosterURL != nil {
		c.PosterURL = *u.PosterURL
	}
	if u.PosterModifiedAt != nil {
		t := *u.PosterModifiedAt
		c.PosterModifiedAt = &t
	}
	if u.Favorite != nil {
		c.Favorite = *u.Favorite
	}
	if u.InList != nil {
		c.InList = *u.InList
	}
	if u.Popularity != nil {
		c.Popularity = *u.Popularity
	}
	if u.VoteCount != nil {
		c.VoteCount = *u.VoteCount
	}
	if u.Genres != nil {
		c.Genres = append([]string(nil), u.Genres...)
	}
	if u.ProductionCompanies != nil {
		c.ProductionCompanies = append([]string(nil), u.ProductionCompanies...)
	}
	if u.ReleaseDate != nil {
		t := *u.ReleaseDate
		c.ReleaseDate = &t
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.ExternalURL != nil {
		c.ExternalURL = *u.ExternalURL
	}
	if u.OriginalLanguage != nil {
		c.OriginalLanguage = *u.OriginalLanguage
	}
	return c
}
