package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"luminate/internal/models"
	"luminate/internal/store/memory"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenRoundTrip(t *testing.T) {
	st := memory.New()
	u := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	if err := st.CreateUser(u); err != nil {
		t.Fatal(err)
	}

	token, err := GenerateToken(u.ID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := gin.New()
	r.Use(LoadUser(st))
	r.GET("/whoami", AuthRequired(), func(c *gin.Context) {
		user := c.MustGet(CheckUserKey).(*models.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestLoadUserStaysPublic(t *testing.T) {
	st := memory.New()

	r := gin.New()
	r.Use(LoadUser(st))
	r.GET("/public", func(c *gin.Context) {
		_, authed := c.Get(CheckUserKey)
		c.JSON(http.StatusOK, gin.H{"authed": authed})
	})

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("header %q: public route status = %d, want 200", header, w.Code)
		}
	}
}

func TestAuthRequiredRejectsAnonymous(t *testing.T) {
	st := memory.New()

	r := gin.New()
	r.Use(LoadUser(st))
	r.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	// A token for a user that no longer exists is rejected too.
	token, err := GenerateToken(12345)
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("deleted-user token status = %d, want 401", w.Code)
	}
}
