package dto

import "time"

type SalesRepresentative struct {
	Name       string `json:"name" binding:"max=50"`
	Phone      string `json:"phone"`
	Department string `json:"department" binding:"max=50"`
}

type CreateClientRequest struct {
	Name     string              `json:"name" binding:"required,max=100"`
	Phone    string              `json:"phone" binding:"required"`
	SalesRep SalesRepresentative `json:"sales_representative"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone"`
	SalesRep *struct {
		Name       *string `json:"name"`
		Phone      *string `json:"phone"`
		Department *string `json:"department"`
	} `json:"sales_representative"`
}

type ClientResponse struct {
	ID        int64               `json:"id"`
	CompanyID int64               `json:"company_id"`
	Name      string              `json:"name"`
	Phone     string              `json:"phone"`
	SalesRep  SalesRepresentative `json:"sales_representative"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
}
