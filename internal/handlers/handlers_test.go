package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"luminate/internal/middleware"
	"luminate/internal/models"
	"luminate/internal/store"
	"luminate/internal/store/memory"
	"luminate/internal/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter wires the community routes against a fresh in-memory store.
// The route shapes mirror internal/router; the router package itself would
// import-cycle back into handlers.
func setupRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	st := memory.New()

	// The cache is process-global, so stale feed pages from a previous
	// test must not leak into this one.
	cache := utils.GetCache()
	cache.Delete(feedCacheKey(store.TabPopular, nil))
	cache.Delete(feedCacheKey(store.TabLatest, nil))
	cache.Delete("trending:ticker")

	r := gin.New()
	r.Use(middleware.LoadUser(st))

	authHandler := NewAuthHandler(st)
	postHandler := NewPostHandler(st)
	commentHandler := NewCommentHandler(st)

	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/community/posts", postHandler.List)
	api.GET("/community/posts/:id", postHandler.Get)
	api.GET("/community/posts/:id/comments", commentHandler.List)

	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.POST("/community/posts", postHandler.Create)
		authorized.PATCH("/community/posts/:id", postHandler.Edit)
		authorized.DELETE("/community/posts/:id", postHandler.Delete)
		authorized.POST("/community/posts/:id/like", postHandler.Like)
		authorized.DELETE("/community/posts/:id/like", postHandler.Unlike)
		authorized.POST("/community/posts/:id/comments", commentHandler.Create)
		authorized.PATCH("/community/comments/:id", commentHandler.Edit)
		authorized.DELETE("/community/comments/:id", commentHandler.Delete)
		authorized.POST("/community/comments/:id/like", commentHandler.Like)
		authorized.DELETE("/community/comments/:id/like", commentHandler.Unlike)
	}
	return r, st
}

func createTestUser(t *testing.T, st *memory.Store, username string) (*models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{Username: username, Email: username + "@example.com", Password: hash}
	if err := st.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := middleware.GenerateToken(u.ID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return u, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "carol",
		"email":    "Carol@Example.com",
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, w, &reg)
	if reg.Token == "" {
		t.Error("register returned no token")
	}
	if reg.User.Email != "carol@example.com" {
		t.Errorf("email not normalized: %q", reg.User.Email)
	}

	// Duplicate email is a conflict.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "carol2",
		"email":    "carol@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "carol@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "carol@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}

	// A short password never reaches the store.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "dave",
		"email":    "dave@example.com",
		"password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short password status = %d, want 400", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/community/posts", "", gin.H{"content": "anon"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", w.Code)
	}
}
