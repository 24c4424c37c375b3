package lists

import (
	"time"

	"media_syncer/internal/domain"
)

type listResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	OwnerName       string    `json:"owner_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	SubscriberCount int       `json:"subscriber_count"`
	CreatedAt       time.Time `json:"created_at"`
	ModifiedAt      time.Time `json:"modified_at"`
}

type membersResponse struct {
	Items []memberRow `json:"items"`
}

type memberRow struct {
	ListID  string    `json:"list_id"`
	MovieID *int64    `json:"movie_id"`
	ShowID  *int64    `json:"show_id"`
	AddedAt time.Time `json:"added_at"`
}

// memberRequest is the body for adding a list member or favorite.
type memberRequest struct {
	MovieID *int64 `json:"movie_id,omitempty"`
	ShowID  *int64 `json:"show_id,omitempty"`
}

func (r listResponse) toDomain() *domain.ListHeader {
	return &domain.ListHeader{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		OwnerName:       r.OwnerName,
		Name:            r.Name,
		Description:     r.Description,
		SubscriberCount: r.SubscriberCount,
		CreatedAt:       r.CreatedAt,
		ModifiedAt:      r.ModifiedAt,
	}
}

func (r membersResponse) toDomain() []domain.MemberRow {
	rows := make([]domain.MemberRow, len(r.Items))
	for i, m := range r.Items {
		rows[i] = domain.MemberRow{
			ListID:  m.ListID,
			MovieID: m.MovieID,
			ShowID:  m.ShowID,
			AddedAt: m.AddedAt,
		}
	}
	return rows
}

func newMemberRequest(ref domain.ContentRef) memberRequest {
	id := ref.ID
	if ref.IsMovie() {
		return memberRequest{MovieID: &id}
	}
	return memberRequest{ShowID: &id}
}
