package apiclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/dto"
	"fieldmate/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func newServer(t *testing.T, setup func(r *gin.Engine)) *Client {
	t.Helper()
	r := gin.New()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	c, err := New(Config{URL: srv.URL + "/"})
	require.NoError(t, err)
	return c
}

func TestLoginStoresToken(t *testing.T) {
	var gotAuth string
	c := newServer(t, func(r *gin.Engine) {
		r.POST("/member/login", func(ctx *gin.Context) {
			var req dto.LoginRequest
			require.NoError(t, ctx.ShouldBindJSON(&req))
			assert.Equal(t, "kim", req.LoginID)
			response.Success(ctx, http.StatusOK, dto.TokenResponse{AccessToken: "tok", RefreshToken: "ref"})
		})
		r.GET("/company/:companyId/clients", func(ctx *gin.Context) {
			gotAuth = ctx.GetHeader("Authorization")
			response.Success(ctx, http.StatusOK, dto.ClientListResponse{Items: []dto.ClientResponse{{ID: 1, Name: "Acme"}}})
		})
	})

	out, err := c.Login(context.Background(), "kim", "password1")
	require.NoError(t, err)
	assert.Equal(t, "ref", out.RefreshToken)

	clients, err := c.FetchClientList(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme", clients[0].Name)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	c := newServer(t, func(r *gin.Engine) {
		r.GET("/company/client/business/task/:taskId", func(ctx *gin.Context) {
			response.Error(ctx, http.StatusNotFound, "not found")
		})
	})

	_, err := c.FetchTaskByID(context.Background(), 9)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Equal(t, "not found", apiErr.Message)
}

func TestFetchTaskListSendsDateAndType(t *testing.T) {
	c := newServer(t, func(r *gin.Engine) {
		r.GET("/company/:companyId/client/business/tasks", func(ctx *gin.Context) {
			assert.Equal(t, "10", ctx.Param("companyId"))
			assert.Equal(t, "2026-10-19", ctx.Query("date"))
			assert.Equal(t, "OTHER", ctx.Query("type"))
			response.Success(ctx, http.StatusOK, dto.TaskListResponse{Items: []dto.TaskResponse{{ID: 3, Title: "Visit"}}})
		})
		r.GET("/company/:companyId/client/business/task/categories", func(ctx *gin.Context) {
			response.Success(ctx, http.StatusOK, dto.CategoryListResponse{Items: []dto.CategoryResponse{{ID: 1, Color: "#FF0000"}}})
		})
	})

	tasks, err := c.FetchTaskList(context.Background(), 10, time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC), dom.TaskScopeOthers)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Visit", tasks[0].Title)

	cats, err := c.FetchTaskCategoryList(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", cats[0].Color)
}

func TestCreateTaskSendsMultipart(t *testing.T) {
	c := newServer(t, func(r *gin.Engine) {
		r.POST("/company/client/business/task", func(ctx *gin.Context) {
			assert.Equal(t, "7", ctx.PostForm(dto.FormBusinessID))
			assert.Equal(t, "2", ctx.PostForm(dto.FormCategoryID))
			assert.Equal(t, "2026-10-19", ctx.PostForm(dto.FormDate))
			assert.Equal(t, "Visit", ctx.PostForm(dto.FormTitle))

			form, err := ctx.MultipartForm()
			require.NoError(t, err)
			files := form.File[dto.FormImages]
			require.Len(t, files, 2)
			f, err := files[1].Open()
			require.NoError(t, err)
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "second", string(data))

			response.Success(ctx, http.StatusCreated, dto.CreateTaskResponse{ID: 42})
		})
	})

	cat := int64(2)
	id, err := c.CreateTask(context.Background(), CreateTaskInput{
		BusinessID: 7, CategoryID: &cat, Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), Title: "Visit",
	},
		Image{Filename: "a.jpg", Data: bytes.NewReader([]byte("first"))},
		Image{Filename: "b.jpg", Data: bytes.NewReader([]byte("second"))},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestNonEnvelopeResponse(t *testing.T) {
	c := newServer(t, func(r *gin.Engine) {
		r.GET("/company/:companyId/clients", func(ctx *gin.Context) {
			ctx.String(http.StatusBadGateway, "upstream down")
		})
	})

	_, err := c.FetchClientList(context.Background(), 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Code)
	assert.Equal(t, "upstream down", apiErr.Message)
}
