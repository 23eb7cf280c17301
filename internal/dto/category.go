package dto

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=30"`
	Color string `json:"color" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=30"`
	Color *string `json:"color"`
}

// DeleteCategoriesRequest is the body of the batch delete.
type DeleteCategoriesRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

type CategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
