package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/skratchdot/open-golang/open"

	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/version"
)

// Repo identifies the GitHub repository used for release checks.
const Repo = "conn-castle/pplus-installer"

// DefaultReleasesURL lists releases newest first.
const DefaultReleasesURL = "https://api.github.com/repos/" + Repo + "/releases"

// DefaultDownloadURL is the page users download new installers from.
const DefaultDownloadURL = "https://github.com/" + Repo + "/releases/latest"

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// openURL is a seam for tests.
var openURL = open.Run

// RateLimitError indicates GitHub's API rate limit was hit while checking for updates.
//
// Callers should generally treat this as a best-effort failure and suppress/minimize output.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remainingText := "unknown"
	if e.Remaining != nil {
		remainingText = strconv.Itoa(*e.Remaining)
	}
	return fmt.Sprintf(messages.UpdateRateLimitFmt, e.Status, remainingText)
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// Checker queries a GitHub-style releases feed.
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a Checker for releasesURL using the default HTTP client.
// An empty releasesURL uses DefaultReleasesURL.
func NewChecker(releasesURL string) *Checker {
	if strings.TrimSpace(releasesURL) == "" {
		releasesURL = DefaultReleasesURL
	}
	return &Checker{URL: releasesURL, Client: defaultHTTPClient}
}

// Check fetches the latest release and compares it to currentVersion.
// It returns the normalized versions along with an outdated flag. Dev builds
// are never outdated.
func (c *Checker) Check(ctx context.Context, currentVersion string) (CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	current, isDev, err := normalizeCurrentVersion(currentVersion)
	if err != nil {
		return CheckResult{}, err
	}

	latest, err := c.fetchLatestReleaseVersion(ctx)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{
		Current:      current,
		Latest:       latest,
		CurrentIsDev: isDev,
	}
	if !isDev {
		cmp, err := version.Compare(current, latest)
		if err != nil {
			return CheckResult{}, err
		}
		result.Outdated = cmp == version.Less
	}
	return result, nil
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// fetchLatestReleaseVersion returns the normalized tag of the first release in the feed.
// The request is made once; failures are returned to the caller, which skips the check.
func (c *Checker) fetchLatestReleaseVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf(messages.UpdateCreateRequestErrFmt, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "pplus-installer")

	client := c.Client
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.UpdateFetchLatestReleaseErrFmt, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if rateLimitErr := rateLimitErrorFromResponse(resp); rateLimitErr != nil {
			return "", rateLimitErr
		}
		return "", fmt.Errorf(messages.UpdateFetchLatestReleaseStatusFmt, resp.Status)
	}

	var payload []releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf(messages.UpdateDecodeLatestReleaseErrFmt, err)
	}
	if len(payload) == 0 {
		return "", errors.New(messages.UpdateNoReleases)
	}
	tag := strings.TrimSpace(payload[0].TagName)
	if tag == "" {
		return "", errors.New(messages.UpdateLatestReleaseMissingTag)
	}
	normalized, err := version.Normalize(tag)
	if err != nil {
		return "", fmt.Errorf(messages.UpdateInvalidLatestReleaseTagFmt, tag, err)
	}
	return normalized, nil
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	// GitHub returns 403 Forbidden for unauthenticated exhaustion; confirm with rate-limit headers.
	if resp.StatusCode == http.StatusForbidden {
		remainingStr := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
		if remainingStr == "" {
			return nil
		}
		remaining, err := strconv.Atoi(remainingStr)
		if err != nil {
			return nil //nolint:nilerr // Malformed header means we cannot confirm rate limiting; fall through to generic error.
		}
		if remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
		}
	}
	return nil
}

// normalizeCurrentVersion validates the current version and reports dev builds.
func normalizeCurrentVersion(raw string) (string, bool, error) {
	if version.IsDev(raw) {
		return "dev", true, nil
	}
	normalized, err := version.Normalize(raw)
	if err != nil {
		return "", false, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, raw, err)
	}
	return normalized, false, nil
}

// OpenDownloadPage opens url in the user's browser.
func OpenDownloadPage(url string) error {
	if err := openURL(url); err != nil {
		return fmt.Errorf(messages.UpdateOpenBrowserFailedFmt, url, err)
	}
	return nil
}
