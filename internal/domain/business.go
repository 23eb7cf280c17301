package domain

import "time"

// Business is an engagement with a client, staffed by members of the company.
type Business struct {
	ID          int64
	ClientID    int64
	CompanyID   int64
	Name        string
	Description string
	Revenue     int64
	StartDate   time.Time
	EndDate     time.Time
	MemberIDs   []int64

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
