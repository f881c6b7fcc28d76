// Package update checks GitHub for a newer szuru release.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	// DefaultGitHubReleasesURL is the latest-release endpoint of this
	// project's repository.
	DefaultGitHubReleasesURL = "https://api.github.com/repos/rzk3/szurubooru-client/releases/latest"
	CheckTimeout             = 5 * time.Second
)

// GitHubReleasesURL is the endpoint queried by CheckForUpdate.
// Overridden in tests.
var GitHubReleasesURL = DefaultGitHubReleasesURL

// release is the slice of the GitHub release payload we care about.
type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckResult describes the outcome of a release check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
}

// CheckForUpdate asks GitHub for the latest release and compares it to
// currentVersion. Any failure returns nil; the check must never block
// or break the CLI.
func CheckForUpdate(ctx context.Context, currentVersion string) *CheckResult {
	if currentVersion == "dev" || currentVersion == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GitHubReleasesURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var latest release
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return nil
	}

	result := &CheckResult{
		CurrentVersion: currentVersion,
		LatestVersion:  strings.TrimPrefix(latest.TagName, "v"),
		UpdateURL:      latest.HTMLURL,
	}

	current := normalizeVersion(currentVersion)
	tag := normalizeVersion(latest.TagName)
	if semver.IsValid(current) && semver.IsValid(tag) {
		result.UpdateAvailable = semver.Compare(tag, current) > 0
	}
	return result
}

// normalizeVersion adds the leading v that semver.Compare requires.
func normalizeVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
