package handlers

import (
	"net/http"

	"fieldmate/internal/dto"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	svc *service.MemberService
}

func NewMemberHandler(svc *service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// List godoc
// @Summary      List members of a company
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   int     true   "Company ID"
// @Param        name       query  string  false  "Name filter"
// @Success      200  {object}  response.Body{result=dto.MemberListResponse}
// @Failure      403  {object}  response.Body
// @Router       /company/{companyId}/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), a, companyID, c.Query("name"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.MemberListResponse{Items: membersToResponses(list)})
}

// Create godoc
// @Summary      Add a staff member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  int                true  "Company ID"
// @Param        body       body  dto.MemberRequest  true  "Member"
// @Success      201  {object}  response.Body{result=dto.MemberResponse}
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /company/{companyId}/member [post]
func (h *MemberHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.svc.Create(c.Request.Context(), a, companyID, memberInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, memberToResponse(m))
}

// Me godoc
// @Summary      Current member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Body{result=dto.MemberResponse}
// @Router       /member/me [get]
func (h *MemberHandler) Me(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), a, a.MemberID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, memberToResponse(m))
}

// Get godoc
// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberId  path  int  true  "Member ID"
// @Success      200  {object}  response.Body{result=dto.MemberResponse}
// @Failure      404  {object}  response.Body
// @Router       /member/{memberId} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), a, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, memberToResponse(m))
}

// Update godoc
// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberId  path  int                      true  "Member ID"
// @Param        body      body  dto.UpdateMemberRequest  true  "Partial update"
// @Success      200  {object}  response.Body{result=dto.MemberResponse}
// @Failure      403  {object}  response.Body
// @Router       /member/{memberId} [patch]
func (h *MemberHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.svc.Update(c.Request.Context(), a, id, service.MemberPatch{
		Name:        req.Name,
		Password:    req.Password,
		Phone:       req.Phone,
		StaffRank:   req.StaffRank,
		StaffNumber: req.StaffNumber,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, memberToResponse(m))
}

// Delete godoc
// @Summary      Remove a member
// @Tags         members
// @Security     BearerAuth
// @Param        memberId  path  int  true  "Member ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      409  {object}  response.Body
// @Router       /member/{memberId} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), a, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}
