package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestEnvelope(t *testing.T) {
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { Success(c, http.StatusOK, gin.H{"id": 7}) })
	r.POST("/new", func(c *gin.Context) { Success(c, http.StatusCreated, nil) })
	r.GET("/bad", func(c *gin.Context) { Error(c, http.StatusBadRequest, "name is required") })
	r.GET("/abort", func(c *gin.Context) { Abort(c, http.StatusUnauthorized, "authorization required") }, func(c *gin.Context) {
		t.Fatal("chain must stop after Abort")
	})

	cases := []struct {
		method, path string
		status       int
		success      bool
		message      string
	}{
		{http.MethodGet, "/ok", 200, true, MsgSuccess},
		{http.MethodPost, "/new", 201, true, MsgCreated},
		{http.MethodGet, "/bad", 400, false, "name is required"},
		{http.MethodGet, "/abort", 401, false, "authorization required"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, tc.status, w.Code, tc.path)

		var body Body
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.success, body.IsSuccess, tc.path)
		assert.Equal(t, tc.status, body.Code, tc.path)
		assert.Equal(t, tc.message, body.Message, tc.path)
	}
}
