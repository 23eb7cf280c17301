package dto

import "time"

// LoginRequest is the JSON body for POST /member/login.
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the body of /member/reissue and /member/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type MemberRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	LoginID     string `json:"login_id" binding:"required,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Phone       string `json:"phone"`
	StaffRank   string `json:"staff_rank" binding:"max=30"`
	StaffNumber string `json:"staff_number" binding:"max=30"`
}

type UpdateMemberRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=72"`
	Phone       *string `json:"phone"`
	StaffRank   *string `json:"staff_rank" binding:"omitempty,max=30"`
	StaffNumber *string `json:"staff_number" binding:"omitempty,max=30"`
}

// RegisterCompanyRequest creates a company and its leader in one call.
type RegisterCompanyRequest struct {
	CompanyName string        `json:"company_name" binding:"required,max=100"`
	Leader      MemberRequest `json:"leader"`
}

type MemberResponse struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Name        string    `json:"name"`
	LoginID     string    `json:"login_id"`
	Role        string    `json:"role"`
	Phone       string    `json:"phone"`
	StaffRank   string    `json:"staff_rank"`
	StaffNumber string    `json:"staff_number"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberListResponse struct {
	Items []MemberResponse `json:"items"`
}

type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
	Member       MemberResponse `json:"member"`
}

type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	TokenResponse
}
