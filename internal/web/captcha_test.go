package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifund-app/ifund/internal/domain"
)

func captchaServer(t *testing.T, success bool, score float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"success":%t,"score":%g}`, success, score)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCaptchaDisabledAllowsEverything(t *testing.T) {
	v := NewCaptchaVerifier("", 0.3)
	require.False(t, v.Enabled())
	require.NoError(t, v.Verify(context.Background(), "", "1.2.3.4"))
}

func TestCaptchaRejectsEmptyToken(t *testing.T) {
	v := NewCaptchaVerifier("secret", 0.3)
	err := v.Verify(context.Background(), "", "1.2.3.4")
	require.ErrorIs(t, err, domain.ErrSuspiciousActivity)
}

func TestCaptchaScoreThreshold(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		score   float64
		wantErr bool
	}{
		{"good score", true, 0.9, false},
		{"at threshold", true, 0.3, false},
		{"low score", true, 0.1, true},
		{"failed verification", false, 0.9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := captchaServer(t, tt.success, tt.score)
			v := NewCaptchaVerifier("secret", 0.3)
			v.endpoint = srv.URL

			err := v.Verify(context.Background(), "token", "1.2.3.4")
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrSuspiciousActivity)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCaptchaUnreachableServiceFailsOpen(t *testing.T) {
	srv := captchaServer(t, true, 1)
	srv.Close()

	v := NewCaptchaVerifier("secret", 0.3)
	v.endpoint = srv.URL

	require.NoError(t, v.Verify(context.Background(), "token", "1.2.3.4"))
}
