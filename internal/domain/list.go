package domain

import (
	"fmt"
	"time"
)

// List is a local list. RemoteID is nil for lists that only exist on this device.
type List struct {
	ID              int64
	RemoteID        *string
	OwnerID         string
	OwnerName       string
	Name            string
	Description     string
	InLibrary       bool
	SubscriberCount int
	CreatedAt       time.Time
	ModifiedAt      time.Time
	SyncedAt        *time.Time
}

// ListUpdate carries only changed fields. A nil field means "leave unchanged".
type ListUpdate struct {
	ID          int64
	Name        *string
	Description *string
	OwnerName   *string
	ModifiedAt  *time.Time
	SyncedAt    *time.Time
	Subscribers *int
}

type ListItem struct {
	ListID  int64
	Content ContentRef
	AddedAt time.Time
}

// ListHeader is the remote description of a shared list.
type ListHeader struct {
	ID              string
	OwnerID         string
	OwnerName       string
	Name            string
	Description     string
	SubscriberCount int
	CreatedAt       time.Time
	ModifiedAt      time.Time
}

// MemberRow is one remote list or favorites membership. Exactly one of
// MovieID and ShowID is set on a well-formed row.
type MemberRow struct {
	ListID  string
	MovieID *int64
	ShowID  *int64
	AddedAt time.Time
}

func (m MemberRow) Ref() (ContentRef, error) {
	switch {
	case m.MovieID != nil && m.ShowID != nil:
		return ContentRef{}, fmt.Errorf("both movie and show id set: %w", ErrMalformedRow)
	case m.MovieID != nil:
		return MovieRef(*m.MovieID), nil
	case m.ShowID != nil:
		return ShowRef(*m.ShowID), nil
	default:
		return ContentRef{}, fmt.Errorf("neither movie nor show id set: %w", ErrMalformedRow)
	}
}
