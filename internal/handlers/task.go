package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/dto"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/gin-gonic/gin"
)

// multipartMemory is how much of a form is buffered in memory; the rest of
// the file parts spill to temp files.
const multipartMemory = 8 << 20

type TaskHandler struct {
	svc     *service.TaskService
	maxBody int64
}

// NewTaskHandler limits multipart bodies to maxBody bytes.
func NewTaskHandler(svc *service.TaskService, maxBody int64) *TaskHandler {
	return &TaskHandler{svc: svc, maxBody: maxBody}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        businessId   formData  int     true   "Business ID"
// @Param        categoryId   formData  int     false  "Category ID"
// @Param        date         formData  string  true   "YYYY-MM-DD"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        images       formData  file    false  "Images"
// @Success      201  {object}  response.Body{result=dto.CreateTaskResponse}
// @Failure      400  {object}  response.Body
// @Failure      413  {object}  response.Body
// @Failure      415  {object}  response.Body
// @Router       /company/client/business/task [post]
func (h *TaskHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	form, ok := h.parseForm(c)
	if !ok {
		return
	}
	defer form.RemoveAll()

	var in service.TaskInput
	var err error
	if in.BusinessID, err = formID(form, dto.FormBusinessID); err != nil || in.BusinessID == 0 {
		badRequest(c, fmt.Errorf("%s is required", dto.FormBusinessID))
		return
	}
	if raw := formValue(form, dto.FormCategoryID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			badRequest(c, fmt.Errorf("invalid %s", dto.FormCategoryID))
			return
		}
		in.CategoryID = &id
	}
	d, err := dto.ParseDay(formValue(form, dto.FormDate))
	if err != nil {
		badRequest(c, err)
		return
	}
	in.Date = d.Time()
	in.Title = formValue(form, dto.FormTitle)
	in.Description = formValue(form, dto.FormDescription)

	t, err := h.svc.Create(c.Request.Context(), a, in, uploads(form))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto.CreateTaskResponse{ID: t.ID})
}

// Get godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path  int  true  "Task ID"
// @Success      200  {object}  response.Body{result=dto.TaskResponse}
// @Failure      404  {object}  response.Body
// @Router       /company/client/business/task/{taskId} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "taskId")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), a, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, taskToResponse(d))
}

// List godoc
// @Summary      List tasks of a day
// @Description  type=TASK lists the caller's own tasks, type=OTHER everyone else's.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   int     true  "Company ID"
// @Param        date       query  string  true  "YYYY-MM-DD"
// @Param        type       query  string  true  "TASK or OTHER"
// @Success      200  {object}  response.Body{result=dto.TaskListResponse}
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Router       /company/{companyId}/client/business/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	d, err := dto.ParseDay(c.Query("date"))
	if err != nil {
		badRequest(c, err)
		return
	}
	scope := dom.TaskScope(strings.ToUpper(c.Query("type")))
	if !scope.Valid() {
		badRequest(c, errors.New("type must be TASK or OTHER"))
		return
	}
	list, err := h.svc.ListByDate(c.Request.Context(), a, companyID, d.Time(), scope)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.TaskListResponse{Items: tasksToResponses(list)})
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        taskId          path      int     true   "Task ID"
// @Param        businessId      formData  int     false  "Business ID"
// @Param        categoryId      formData  string  false  "Category ID; empty clears it"
// @Param        date            formData  string  false  "YYYY-MM-DD"
// @Param        title           formData  string  false  "Title"
// @Param        description     formData  string  false  "Description"
// @Param        deleteImageIds  formData  string  false  "Comma separated image IDs"
// @Param        images          formData  file    false  "New images"
// @Success      200  {object}  response.Body{result=dto.CreateTaskResponse}
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Router       /company/client/business/task/{taskId} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "taskId")
	if !ok {
		return
	}
	form, ok := h.parseForm(c)
	if !ok {
		return
	}
	defer form.RemoveAll()

	var p service.TaskPatch
	if _, set := form.Value[dto.FormBusinessID]; set {
		bid, err := formID(form, dto.FormBusinessID)
		if err != nil || bid == 0 {
			badRequest(c, fmt.Errorf("invalid %s", dto.FormBusinessID))
			return
		}
		p.BusinessID = &bid
	}
	if _, set := form.Value[dto.FormCategoryID]; set {
		cid, err := formID(form, dto.FormCategoryID)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid %s", dto.FormCategoryID))
			return
		}
		if cid == 0 {
			p.ClearCategory = true
		} else {
			p.CategoryID = &cid
		}
	}
	if _, set := form.Value[dto.FormDate]; set {
		d, err := dto.ParseDay(formValue(form, dto.FormDate))
		if err != nil {
			badRequest(c, err)
			return
		}
		t := d.Time()
		p.Date = &t
	}
	if v, set := form.Value[dto.FormTitle]; set && len(v) > 0 {
		p.Title = &v[0]
	}
	if v, set := form.Value[dto.FormDescription]; set && len(v) > 0 {
		p.Description = &v[0]
	}
	ids, err := parseIDList(formValue(form, dto.FormDeleteImageIDs))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid %s", dto.FormDeleteImageIDs))
		return
	}
	p.RemoveImageIDs = ids

	t, err := h.svc.Update(c.Request.Context(), a, id, p, uploads(form))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto.CreateTaskResponse{ID: t.ID})
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        taskId  path  int  true  "Task ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /company/client/business/task/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "taskId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), a, id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// Image godoc
// @Summary      Download a task image
// @Tags         tasks
// @Produce      image/jpeg,image/png,image/gif,image/webp,image/heic
// @Security     BearerAuth
// @Param        imageId  path  int  true  "Image ID"
// @Success      200
// @Failure      404  {object}  response.Body
// @Router       /images/{imageId} [get]
func (h *TaskHandler) Image(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "imageId")
	if !ok {
		return
	}
	img, f, err := h.svc.OpenImage(c.Request.Context(), a, id)
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()
	c.Header("Content-Type", img.ContentType)
	c.Header("Cache-Control", "private, max-age=86400")
	http.ServeContent(c.Writer, c.Request, "", img.CreatedAt, f)
}

func (h *TaskHandler) parseForm(c *gin.Context) (*multipart.Form, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(c, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		response.Error(c, http.StatusBadRequest, "multipart form expected")
		return nil, false
	}
	return c.Request.MultipartForm, true
}

func formValue(form *multipart.Form, name string) string {
	if v := form.Value[name]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// formID returns 0 for an empty value.
func formID(form *multipart.Form, name string) (int64, error) {
	raw := formValue(form, name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parseIDList parses "1,2, 3". Empty input yields nil.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func uploads(form *multipart.Form) []service.Upload {
	files := form.File[dto.FormImages]
	out := make([]service.Upload, 0, len(files))
	for _, fh := range files {
		out = append(out, service.Upload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open:     func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return out
}
