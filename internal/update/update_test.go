package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// serveRelease points GitHubReleasesURL at a server answering with the
// given status and body for the duration of the test.
func serveRelease(t *testing.T, status int, body string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/vnd.github.v3+json" {
			t.Errorf("missing GitHub accept header, got %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	prev := GitHubReleasesURL
	GitHubReleasesURL = server.URL
	t.Cleanup(func() {
		server.Close()
		GitHubReleasesURL = prev
	})
}

func releaseBody(tag string) string {
	return fmt.Sprintf(`{"tag_name": %q, "html_url": "https://github.com/rzk3/szurubooru-client/releases/tag/%s"}`, tag, tag)
}

func TestCheckForUpdate_Comparisons(t *testing.T) {
	cases := []struct {
		name       string
		current    string
		latestTag  string
		wantUpdate bool
		wantLatest string
	}{
		{"newer patch", "1.0.0", "v1.0.1", true, "1.0.1"},
		{"newer minor", "1.0.0", "v1.1.0", true, "1.1.0"},
		{"newer major", "1.0.0", "v2.0.0", true, "2.0.0"},
		{"same version", "1.0.0", "v1.0.0", false, "1.0.0"},
		{"current newer", "2.0.0", "v1.0.0", false, "1.0.0"},
		{"current has v prefix", "v1.0.0", "v1.1.0", true, "1.1.0"},
		{"tag without v prefix", "1.0.0", "2.0.0", true, "2.0.0"},
		{"prerelease tag", "1.0.0", "v2.0.0-beta.1", true, "2.0.0-beta.1"},
		{"invalid current semver", "not-a-version", "v2.0.0", false, "2.0.0"},
		{"invalid latest tag", "1.0.0", "not-a-version", false, "not-a-version"},
		{"empty tag", "1.0.0", "", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			serveRelease(t, http.StatusOK, releaseBody(tc.latestTag))

			result := CheckForUpdate(context.Background(), tc.current)
			if result == nil {
				t.Fatal("expected a result, got nil")
			}
			if result.UpdateAvailable != tc.wantUpdate {
				t.Errorf("UpdateAvailable = %v, want %v", result.UpdateAvailable, tc.wantUpdate)
			}
			if result.LatestVersion != tc.wantLatest {
				t.Errorf("LatestVersion = %q, want %q", result.LatestVersion, tc.wantLatest)
			}
			if result.CurrentVersion != tc.current {
				t.Errorf("CurrentVersion = %q, want %q", result.CurrentVersion, tc.current)
			}
		})
	}
}

func TestCheckForUpdate_SkipsUnreleasedBuilds(t *testing.T) {
	for _, version := range []string{"dev", ""} {
		if result := CheckForUpdate(context.Background(), version); result != nil {
			t.Errorf("expected nil for version %q, got %+v", version, result)
		}
	}
}

func TestCheckForUpdate_FailuresReturnNil(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, ""},
		{"rate limited", http.StatusTooManyRequests, ""},
		{"server error", http.StatusInternalServerError, ""},
		{"invalid json", http.StatusOK, "not json"},
		{"empty body", http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			serveRelease(t, tc.status, tc.body)
			if result := CheckForUpdate(context.Background(), "1.0.0"); result != nil {
				t.Errorf("expected nil, got %+v", result)
			}
		})
	}
}

func TestCheckForUpdate_CanceledContext(t *testing.T) {
	serveRelease(t, http.StatusOK, releaseBody("v2.0.0"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if result := CheckForUpdate(ctx, "1.0.0"); result != nil {
		t.Errorf("expected nil on canceled context, got %+v", result)
	}
}

func TestCheckForUpdate_ConnectionError(t *testing.T) {
	prev := GitHubReleasesURL
	GitHubReleasesURL = "http://localhost:1"
	t.Cleanup(func() { GitHubReleasesURL = prev })

	if result := CheckForUpdate(context.Background(), "1.0.0"); result != nil {
		t.Errorf("expected nil on connection error, got %+v", result)
	}
}

func TestNormalizeVersion(t *testing.T) {
	cases := map[string]string{
		"1.0.0":  "v1.0.0",
		"v1.0.0": "v1.0.0",
		"":       "v",
	}
	for in, want := range cases {
		if got := normalizeVersion(in); got != want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
