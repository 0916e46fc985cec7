package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/handler"
	"github.com/inkpress/blog-service/internal/mocks"
	"github.com/inkpress/blog-service/internal/service"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ACCESS_SECRET", testSecret)
	viper.Set("client.origin", "http://localhost:3000")

	repos := mocks.NewRepositories()
	services := service.New(zap.NewNop(), repos.Repository())
	return handler.New(services).InitRoutes(), repos
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuthMiddleware_RejectsBadClaims(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing id", jwt.MapClaims{"role": "writer"}},
		{"bad id", jwt.MapClaims{"id": "not-a-uuid", "role": "writer"}},
		{"missing role", jwt.MapClaims{"id": uuid.New().String()}},
		{"unknown role", jwt.MapClaims{"id": uuid.New().String(), "role": "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, tt.claims))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuthMiddleware_SyncsAndServesUser(t *testing.T) {
	router, repos := newTestRouter(t)

	userID := uuid.New()
	token := signToken(t, jwt.MapClaims{
		"id":    userID.String(),
		"role":  "writer",
		"email": "writer@test.com",
		"name":  "Test Writer",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
		Role  string    `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != userID || body.Role != "writer" || body.Email != "writer@test.com" {
		t.Errorf("Unexpected body %+v", body)
	}

	// The middleware mirrors the account locally on first sight.
	if _, ok := repos.User.Users[userID]; !ok {
		t.Error("Authenticating should persist the user mirror")
	}
}

func TestOptionalAuth_AnonymousListing(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Anonymous listing should succeed, got %d: %s", w.Code, w.Body.String())
	}
}
