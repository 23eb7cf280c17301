package handlers

import (
	"net/http"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/dto"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	svc *service.ClientService
}

func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// Create godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateClientRequest  true  "Client"
// @Success      201   {object}  response.Body{result=dto.ClientResponse}
// @Failure      400   {object}  response.Body
// @Router       /company/client [post]
func (h *ClientHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cl, err := h.svc.Create(c.Request.Context(), a, service.ClientInput{
		Name:  req.Name,
		Phone: req.Phone,
		SalesRep: dom.SalesRepresentative{
			Name:       req.SalesRep.Name,
			Phone:      req.SalesRep.Phone,
			Department: req.SalesRep.Department,
		},
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, clientToResponse(cl))
}

// List godoc
// @Summary      List clients of a company
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   int     true   "Company ID"
// @Param        name       query  string  false  "Name filter"
// @Param        sort       query  string  false  "createdAt (default) or name"
// @Success      200  {object}  response.Body{result=dto.ClientListResponse}
// @Failure      403  {object}  response.Body
// @Router       /company/{companyId}/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	q := dom.ClientQuery{Name: c.Query("name"), Sort: dom.ClientSort(c.Query("sort"))}
	list, err := h.svc.List(c.Request.Context(), a, companyID, q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.ClientListResponse{Items: clientsToResponses(list)})
}

// Get godoc
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path  int  true  "Client ID"
// @Success      200  {object}  response.Body{result=dto.ClientResponse}
// @Failure      404  {object}  response.Body
// @Router       /company/client/{clientId} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "clientId")
	if !ok {
		return
	}
	cl, err := h.svc.Get(c.Request.Context(), a, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, clientToResponse(cl))
}

// Update godoc
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path  int                      true  "Client ID"
// @Param        body      body  dto.UpdateClientRequest  true  "Partial update"
// @Success      200  {object}  response.Body{result=dto.ClientResponse}
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /company/client/{clientId} [patch]
func (h *ClientHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "clientId")
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p := service.ClientPatch{Name: req.Name, Phone: req.Phone}
	if req.SalesRep != nil {
		p.SRName = req.SalesRep.Name
		p.SRPhone = req.SalesRep.Phone
		p.SRDepartment = req.SalesRep.Department
	}
	cl, err := h.svc.Update(c.Request.Context(), a, id, p)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, clientToResponse(cl))
}

// Delete godoc
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        clientId  path  int  true  "Client ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /company/client/{clientId} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "clientId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), a, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}
