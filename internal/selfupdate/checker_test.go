package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abhisek/learnloop/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	server := releaseServer(t, `{"tag_name":"v1.2.0","html_url":"https://example.com/v1.2.0"}`, http.StatusOK)
	checker := NewChecker(WithBaseURL(server.URL))

	tests := []struct {
		current string
		want    bool
	}{
		{"v1.1.9", true},
		{"1.1.9", true},
		{"v1.2.0", false},
		{"v1.10.0", false},
		{"(devel)", true},
	}
	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			res, err := checker.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, "v1.2.0", res.LatestVersion)
			assert.Equal(t, "https://example.com/v1.2.0", res.ReleaseURL)
		})
	}
}

func TestCheckErrors(t *testing.T) {
	t.Run("bad tag", func(t *testing.T) {
		server := releaseServer(t, `{"tag_name":"nightly"}`, http.StatusOK)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.ErrorContains(t, err, "not a semantic version")
	})

	t.Run("http error", func(t *testing.T) {
		server := releaseServer(t, `{}`, http.StatusForbidden)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.ErrorContains(t, err, "HTTP 403")
	})

	t.Run("other repo", func(t *testing.T) {
		server := releaseServer(t, `{"tag_name":"v1.0.0"}`, http.StatusOK)
		_, err := NewChecker(WithBaseURL(server.URL), WithRepo("someone", "else")).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		assert.ErrorContains(t, err, "HTTP 404")
	})
}
