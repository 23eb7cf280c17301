package dto

import "time"

type CreateBusinessRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=1000"`
	Revenue     int64   `json:"revenue" binding:"min=0"`
	StartDate   Day     `json:"start_date"`
	EndDate     Day     `json:"end_date"`
	MemberIDs   []int64 `json:"member_ids"`
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Revenue     *int64  `json:"revenue" binding:"omitempty,min=0"`
	StartDate   *Day    `json:"start_date"`
	EndDate     *Day    `json:"end_date"`
}

type BusinessMembersRequest struct {
	MemberIDs []int64 `json:"member_ids" binding:"required"`
}

type BusinessResponse struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Revenue     int64     `json:"revenue"`
	StartDate   Day       `json:"start_date"`
	EndDate     Day       `json:"end_date"`
	MemberIDs   []int64   `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BusinessListResponse struct {
	Items []BusinessResponse `json:"items"`
}
