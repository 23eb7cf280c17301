package handlers

import (
	"strconv"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/dto"
)

func memberToResponse(m dom.Member) dto.MemberResponse {
	return dto.MemberResponse{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		LoginID:     m.LoginID,
		Role:        string(m.Role),
		Phone:       m.Phone,
		StaffRank:   m.StaffRank,
		StaffNumber: m.StaffNumber,
		CreatedAt:   m.CreatedAt,
	}
}

func membersToResponses(list []dom.Member) []dto.MemberResponse {
	out := make([]dto.MemberResponse, len(list))
	for i := range list {
		out[i] = memberToResponse(list[i])
	}
	return out
}

func clientToResponse(c dom.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Phone:     c.Phone,
		SalesRep: dto.SalesRepresentative{
			Name:       c.SalesRep.Name,
			Phone:      c.SalesRep.Phone,
			Department: c.SalesRep.Department,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func clientsToResponses(list []dom.Client) []dto.ClientResponse {
	out := make([]dto.ClientResponse, len(list))
	for i := range list {
		out[i] = clientToResponse(list[i])
	}
	return out
}

func businessToResponse(b dom.Business) dto.BusinessResponse {
	ids := b.MemberIDs
	if ids == nil {
		ids = []int64{}
	}
	return dto.BusinessResponse{
		ID:          b.ID,
		ClientID:    b.ClientID,
		Name:        b.Name,
		Description: b.Description,
		Revenue:     b.Revenue,
		StartDate:   dto.DayOf(b.StartDate),
		EndDate:     dto.DayOf(b.EndDate),
		MemberIDs:   ids,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func businessesToResponses(list []dom.Business) []dto.BusinessResponse {
	out := make([]dto.BusinessResponse, len(list))
	for i := range list {
		out[i] = businessToResponse(list[i])
	}
	return out
}

func categoryToResponse(c dom.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Color: c.Color}
}

func categoriesToResponses(list []dom.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, len(list))
	for i := range list {
		out[i] = categoryToResponse(list[i])
	}
	return out
}

func imageURL(id int64) string {
	return "/images/" + strconv.FormatInt(id, 10)
}

func taskToResponse(d dom.TaskDetail) dto.TaskResponse {
	images := make([]dto.ImageResponse, len(d.Images))
	for i, img := range d.Images {
		images[i] = dto.ImageResponse{
			ID:          img.ID,
			URL:         imageURL(img.ID),
			ContentType: img.ContentType,
			Size:        img.Size,
		}
	}
	return dto.TaskResponse{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Date:          dto.DayOf(d.Date),
		ClientID:      d.ClientID,
		ClientName:    d.ClientName,
		BusinessID:    d.BusinessID,
		BusinessName:  d.BusinessName,
		AuthorID:      d.AuthorID,
		AuthorName:    d.AuthorName,
		CategoryID:    d.CategoryID,
		CategoryName:  d.CategoryName,
		CategoryColor: d.CategoryColor,
		Images:        images,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func tasksToResponses(list []dom.TaskDetail) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
