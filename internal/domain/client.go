package domain

import "time"

// SalesRepresentative is the contact person on the client's side.
type SalesRepresentative struct {
	Name       string
	Phone      string
	Department string
}

type Client struct {
	ID        int64
	CompanyID int64
	Name      string
	Phone     string
	SalesRep  SalesRepresentative

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type ClientSort string

const (
	ClientSortCreatedAt ClientSort = "createdAt"
	ClientSortName      ClientSort = "name"
)

// ClientQuery filters a company's client list.
type ClientQuery struct {
	Name string
	Sort ClientSort
}
