package dto

import "time"

// Multipart form field names of task create and update.
const (
	FormBusinessID     = "businessId"
	FormCategoryID     = "categoryId"
	FormDate           = "date"
	FormTitle          = "title"
	FormDescription    = "description"
	FormImages         = "images"
	FormDeleteImageIDs = "deleteImageIds"
)

type CreateTaskResponse struct {
	ID int64 `json:"id"`
}

type ImageResponse struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type TaskResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Date          Day             `json:"date"`
	ClientID      int64           `json:"client_id"`
	ClientName    string          `json:"client_name"`
	BusinessID    int64           `json:"business_id"`
	BusinessName  string          `json:"business_name"`
	AuthorID      int64           `json:"author_id"`
	AuthorName    string          `json:"author_name"`
	CategoryID    *int64          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Images        []ImageResponse `json:"images"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
}
