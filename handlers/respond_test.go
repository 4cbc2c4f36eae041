package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type signup struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func newRespondRouter() *gin.Engine {
	r := gin.New()
	r.POST("/signup", func(c *gin.Context) {
		var req signup
		if !bindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBindJSONMessages(t *testing.T) {
	r := newRespondRouter()

	tests := []struct {
		body    string
		status  int
		message string
	}{
		{`{"email":"a@example.com","password":"secret1"}`, http.StatusNoContent, ""},
		{`{"password":"secret1"}`, http.StatusBadRequest, "email is required"},
		{`{"email":"nope","password":"secret1"}`, http.StatusBadRequest, "email must be a valid email address"},
		{`{"email":"a@example.com","password":"abc"}`, http.StatusBadRequest, "password must be at least 6"},
		{`{"email":`, http.StatusBadRequest, "Invalid request body"},
	}
	for _, tt := range tests {
		w := serve(r, http.MethodPost, "/signup", tt.body)
		assert.Equal(t, tt.status, w.Code, tt.body)
		if tt.message != "" {
			assert.Equal(t, tt.message, gjson.Get(w.Body.String(), "message").String(), tt.body)
		}
	}
}

func TestIDParam(t *testing.T) {
	r := newRespondRouter()

	w := serve(r, http.MethodGet, "/items/42", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 42, gjson.Get(w.Body.String(), "id").Int())

	for _, bad := range []string{"0", "-1", "abc"} {
		w = serve(r, http.MethodGet, "/items/"+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Equal(t, "Invalid id", gjson.Get(w.Body.String(), "message").String())
	}
}
