package domain

import "time"

// Credit links a person to one content entry. ContentTitle and ContentPoster
// are copied from the content when the credit is first stored. A nil Order
// means the source did not send one.
type Credit struct {
	ID            string
	Content       ContentRef
	PersonID      *int64
	PersonName    string
	Character     string
	IsCrew        bool
	Order         *int
	Department    string
	Job           string
	ContentTitle  string
	ContentPoster string
	CreatedAt     time.Time
}

type Trailer struct {
	ID          string
	Content     ContentRef
	Name        string
	Key         string
	Site        string
	Type        string
	Official    *bool
	PublishedAt *time.Time
	CreatedAt   time.Time
}
