package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-api/models"
	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[uint]*models.User

func (f fakeUsers) ActiveUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, services.Unauthorized("invalid token: user not found")
	}
	if u.ID == 99 {
		return nil, errors.New("database is gone")
	}
	if !u.IsActive {
		return nil, services.Unauthorized("user is inactive, contact an administrator")
	}
	return u, nil
}

func newRouter(tokens *Tokens, users UserLookup, roles ...models.UserRole) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthRequired(tokens, users)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	users := fakeUsers{
		1:  {ID: 1, Email: "cook@example.com", Role: models.RoleCook, IsActive: true},
		2:  {ID: 2, Email: "gone@example.com", Role: models.RoleWaiter, IsActive: false},
		99: {ID: 99, Role: models.RoleAdmin, IsActive: true},
	}
	sign := func(u *models.User) string {
		tok, err := tokens.GenerateToken(u)
		if err != nil {
			t.Fatal(err)
		}
		return tok
	}
	expired := NewTokens("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, err := expired.GenerateToken(users[1])
	if err != nil {
		t.Fatal(err)
	}
	foreignTok, err := NewTokens("other-secret", time.Hour).GenerateToken(users[1])
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "missing header", token: "", status: http.StatusUnauthorized},
		{name: "garbage", token: "not-a-jwt", status: http.StatusUnauthorized},
		{name: "wrong secret", token: foreignTok, status: http.StatusUnauthorized},
		{name: "expired", token: expiredTok, status: http.StatusUnauthorized},
		{name: "inactive user", token: sign(users[2]), status: http.StatusUnauthorized},
		{name: "deleted user", token: sign(&models.User{ID: 7, Role: models.RoleWaiter}), status: http.StatusUnauthorized},
		{name: "lookup failure", token: sign(users[99]), status: http.StatusInternalServerError},
		{name: "valid", token: sign(users[1]), status: http.StatusOK},
	}
	r := newRouter(tokens, users)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.token)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if tt.status != http.StatusOK && body["success"] != false {
				t.Fatalf("expected failure envelope, got %v", body)
			}
			if tt.status == http.StatusOK && body["role"] != string(models.RoleCook) {
				t.Fatalf("expected cook role in context, got %v", body)
			}
		})
	}
}

func TestRoleRequired(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	cook := &models.User{ID: 1, Role: models.RoleCook, IsActive: true}
	admin := &models.User{ID: 2, Role: models.RoleAdmin, IsActive: true}
	users := fakeUsers{1: cook, 2: admin}
	r := newRouter(tokens, users, models.RoleAdmin, models.RoleWaiter)

	cookTok, _ := tokens.GenerateToken(cook)
	w := do(r, cookTok)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cook, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["message"] != "Access denied. Required role(s): admin, waiter" {
		t.Fatalf("unexpected message %v", body["message"])
	}

	adminTok, _ := tokens.GenerateToken(admin)
	if w := do(r, adminTok); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	if id == "" || w.Body.String() != id {
		t.Fatalf("expected generated request id, header=%q body=%q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming id to be kept, got %q", w.Header().Get(RequestIDHeader))
	}
}

func TestRecovery(t *testing.T) {
	for _, production := range []bool{false, true} {
		r := gin.New()
		r.Use(Recovery(production))
		r.GET("/", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		_, hasStack := body["stack"]
		if hasStack == production {
			t.Fatalf("production=%v: unexpected stack presence %v", production, hasStack)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected preflight response %d %v", w.Code, w.Header())
	}
}
