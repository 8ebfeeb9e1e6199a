package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
)

// testApp mounts the routes with no backing services; only paths that
// reject before reaching a service are exercised.
func testApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	h := New(Deps{
		Cfg:     &config.Config{JWTSecret: "test-secret"},
		Captcha: NewCaptchaVerifier("", 0.3),
	})
	h.Register(app)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignupRejectsInvalidBody(t *testing.T) {
	app := testApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"not json", `not json`},
		{"short username", `{"activation_code":"IFD-x","username":"ab","full_name":"A","email":"a@b.c","password":"secret1"}`},
		{"bad email", `{"activation_code":"IFD-x","username":"alice","full_name":"A","email":"nope","password":"secret1"}`},
		{"short password", `{"activation_code":"IFD-x","username":"alice","full_name":"A","email":"a@b.c","password":"123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/signup", tt.body))
			require.NoError(t, err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login", `{"username":"alice"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer bogus.token.here")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	app := testApp(t)

	token, err := CreateToken("test-secret", &domain.User{ID: 7})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
