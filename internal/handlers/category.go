package handlers

import (
	"net/http"

	"fieldmate/internal/dto"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary      List task categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  int  true  "Company ID"
// @Success      200  {object}  response.Body{result=dto.CategoryListResponse}
// @Failure      403  {object}  response.Body
// @Router       /company/{companyId}/client/business/task/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), a, companyID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.CategoryListResponse{Items: categoriesToResponses(list)})
}

// Create godoc
// @Summary      Create a task category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  int                        true  "Company ID"
// @Param        body       body  dto.CreateCategoryRequest  true  "Category"
// @Success      201  {object}  response.Body{result=dto.CategoryResponse}
// @Failure      400  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /company/{companyId}/client/business/task/category [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), a, companyID, req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, categoryToResponse(cat))
}

// Update godoc
// @Summary      Update a task category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        categoryId  path  int                        true  "Category ID"
// @Param        body        body  dto.UpdateCategoryRequest  true  "Partial update"
// @Success      200  {object}  response.Body{result=dto.CategoryResponse}
// @Failure      404  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /company/client/business/task/category/{categoryId} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "categoryId")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), a, id, req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, categoryToResponse(cat))
}

// DeleteMany godoc
// @Summary      Delete several task categories
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DeleteCategoriesRequest  true  "Category IDs"
// @Success      200  {object}  response.Body{result=dto.DeletedResponse}
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Router       /company/client/business/task/categories [delete]
func (h *CategoryHandler) DeleteMany(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.DeleteCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	n, err := h.svc.DeleteMany(c.Request.Context(), a, req.IDs)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.DeletedResponse{Deleted: n})
}
