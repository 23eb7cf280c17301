package handlers

import (
	"net/http"

	"fieldmate/internal/dto"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	svc *service.BusinessService
}

func NewBusinessHandler(svc *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{svc: svc}
}

// Create godoc
// @Summary      Create a business for a client
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path  int                        true  "Client ID"
// @Param        body      body  dto.CreateBusinessRequest  true  "Business"
// @Success      201  {object}  response.Body{result=dto.BusinessResponse}
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /company/client/{clientId}/business [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	clientID, ok := parseID(c, "clientId")
	if !ok {
		return
	}
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), a, clientID, service.BusinessInput{
		Name:        req.Name,
		Description: req.Description,
		Revenue:     req.Revenue,
		StartDate:   req.StartDate.Time(),
		EndDate:     req.EndDate.Time(),
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, businessToResponse(b))
}

// List godoc
// @Summary      List businesses of a client
// @Tags         businesses
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path  int  true  "Client ID"
// @Success      200  {object}  response.Body{result=dto.BusinessListResponse}
// @Failure      404  {object}  response.Body
// @Router       /company/client/{clientId}/businesses [get]
func (h *BusinessHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	clientID, ok := parseID(c, "clientId")
	if !ok {
		return
	}
	list, err := h.svc.ListByClient(c.Request.Context(), a, clientID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.BusinessListResponse{Items: businessesToResponses(list)})
}

// Get godoc
// @Summary      Get a business
// @Tags         businesses
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path  int  true  "Business ID"
// @Success      200  {object}  response.Body{result=dto.BusinessResponse}
// @Failure      404  {object}  response.Body
// @Router       /company/client/business/{businessId} [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "businessId")
	if !ok {
		return
	}
	b, err := h.svc.Get(c.Request.Context(), a, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, businessToResponse(b))
}

// Update godoc
// @Summary      Update a business
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path  int                        true  "Business ID"
// @Param        body        body  dto.UpdateBusinessRequest  true  "Partial update"
// @Success      200  {object}  response.Body{result=dto.BusinessResponse}
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /company/client/business/{businessId} [patch]
func (h *BusinessHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "businessId")
	if !ok {
		return
	}
	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.Update(c.Request.Context(), a, id, service.BusinessPatch{
		Name:        req.Name,
		Description: req.Description,
		Revenue:     req.Revenue,
		StartDate:   req.StartDate.Ptr(),
		EndDate:     req.EndDate.Ptr(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, businessToResponse(b))
}

// Delete godoc
// @Summary      Delete a business
// @Tags         businesses
// @Security     BearerAuth
// @Param        businessId  path  int  true  "Business ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /company/client/business/{businessId} [delete]
func (h *BusinessHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "businessId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), a, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// Members godoc
// @Summary      List members of a business
// @Tags         businesses
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path  int  true  "Business ID"
// @Success      200  {object}  response.Body{result=dto.MemberListResponse}
// @Router       /company/client/business/{businessId}/members [get]
func (h *BusinessHandler) Members(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "businessId")
	if !ok {
		return
	}
	list, err := h.svc.Members(c.Request.Context(), a, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.MemberListResponse{Items: membersToResponses(list)})
}

// SetMembers godoc
// @Summary      Replace the members of a business
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  path  int                         true  "Business ID"
// @Param        body        body  dto.BusinessMembersRequest  true  "Member IDs"
// @Success      200  {object}  response.Body{result=dto.MemberListResponse}
// @Failure      400  {object}  response.Body
// @Router       /company/client/business/{businessId}/members [put]
func (h *BusinessHandler) SetMembers(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "businessId")
	if !ok {
		return
	}
	var req dto.BusinessMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.svc.SetMembers(c.Request.Context(), a, id, req.MemberIDs)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.MemberListResponse{Items: membersToResponses(list)})
}
