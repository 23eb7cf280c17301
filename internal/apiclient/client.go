// Package apiclient is a Go client of the FieldMate REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	dom "fieldmate/internal/domain"
	"fieldmate/internal/dto"
)

// APIError is returned when the server answers with is_success=false.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Client talks to one API server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

type Config struct {
	URL        string
	Token      string
	HTTPClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		httpClient: httpClient,
		token:      cfg.Token,
	}, nil
}

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login signs in and keeps the access token for later calls.
func (c *Client) Login(ctx context.Context, loginID, password string) (dto.TokenResponse, error) {
	var out dto.TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/member/login", nil,
		dto.LoginRequest{LoginID: loginID, Password: password}, &out)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	c.SetToken(out.AccessToken)
	return out, nil
}

// CreateTaskInput holds the text parts of a task create request.
type CreateTaskInput struct {
	BusinessID  int64
	CategoryID  *int64
	Date        time.Time
	Title       string
	Description string
}

// Image is one file part of a task create request.
type Image struct {
	Filename string
	Data     io.Reader
}

// CreateTask uploads a task with its images and returns the new task id.
func (c *Client) CreateTask(ctx context.Context, in CreateTaskInput, images ...Image) (int64, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		dto.FormBusinessID:  strconv.FormatInt(in.BusinessID, 10),
		dto.FormDate:        dto.DayOf(in.Date).String(),
		dto.FormTitle:       in.Title,
		dto.FormDescription: in.Description,
	}
	if in.CategoryID != nil {
		fields[dto.FormCategoryID] = strconv.FormatInt(*in.CategoryID, 10)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return 0, err
		}
	}
	for _, img := range images {
		part, err := w.CreateFormFile(dto.FormImages, img.Filename)
		if err != nil {
			return 0, err
		}
		if _, err := io.Copy(part, img.Data); err != nil {
			return 0, fmt.Errorf("image %s: %w", img.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/company/client/business/task", nil, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	var out dto.CreateTaskResponse
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) FetchClientList(ctx context.Context, companyID int64) ([]dto.ClientResponse, error) {
	var out dto.ClientListResponse
	path := "/company/" + strconv.FormatInt(companyID, 10) + "/clients"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) FetchTaskCategoryList(ctx context.Context, companyID int64) ([]dto.CategoryResponse, error) {
	var out dto.CategoryListResponse
	path := "/company/" + strconv.FormatInt(companyID, 10) + "/client/business/task/categories"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) FetchTaskByID(ctx context.Context, taskID int64) (dto.TaskResponse, error) {
	var out dto.TaskResponse
	path := "/company/client/business/task/" + strconv.FormatInt(taskID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return dto.TaskResponse{}, err
	}
	return out, nil
}

// FetchTaskList lists the tasks of one day; scope TASK is the caller's own.
func (c *Client) FetchTaskList(ctx context.Context, companyID int64, date time.Time, scope dom.TaskScope) ([]dto.TaskResponse, error) {
	var out dto.TaskListResponse
	path := "/company/" + strconv.FormatInt(companyID, 10) + "/client/business/tasks"
	q := url.Values{}
	q.Set("date", dto.DayOf(date).String())
	q.Set("type", string(scope))
	if err := c.doJSON(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, query, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// envelope mirrors response.Body with a raw result.
type envelope struct {
	IsSuccess bool            `json:"is_success"`
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Result    json.RawMessage `json:"result"`
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &APIError{Code: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	if !env.IsSuccess {
		code := env.Code
		if code == 0 {
			code = resp.StatusCode
		}
		return &APIError{Code: code, Message: env.Message}
	}
	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
