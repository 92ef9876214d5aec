package update

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestChecker(t *testing.T, handler http.HandlerFunc) *Checker {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &Checker{URL: server.URL, Client: server.Client()}
}

func releasesHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestCheckOutdated(t *testing.T) {
	checker := newTestChecker(t, releasesHandler(`[{"tag_name":"v2.4.0"},{"tag_name":"v2.3.2"}]`))

	result, err := checker.Check(context.Background(), "2.3.2")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.Outdated {
		t.Fatalf("expected outdated, got %+v", result)
	}
	if result.Latest != "2.4.0" {
		t.Fatalf("expected latest 2.4.0, got %s", result.Latest)
	}
	if result.Current != "2.3.2" {
		t.Fatalf("expected current 2.3.2, got %s", result.Current)
	}
}

func TestCheckUpToDate(t *testing.T) {
	checker := newTestChecker(t, releasesHandler(`[{"tag_name":"2.3.2"}]`))

	result, err := checker.Check(context.Background(), "v2.3.2")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Outdated {
		t.Fatalf("expected up-to-date, got %+v", result)
	}
}

func TestCheckNewerThanLatest(t *testing.T) {
	checker := newTestChecker(t, releasesHandler(`[{"tag_name":"v1.0.0"}]`))

	result, err := checker.Check(context.Background(), "2.0.0")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Outdated {
		t.Fatalf("expected not outdated, got %+v", result)
	}
}

func TestCheckDevBuild(t *testing.T) {
	checker := newTestChecker(t, releasesHandler(`[{"tag_name":"v9.0.0"}]`))

	result, err := checker.Check(context.Background(), "dev")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.CurrentIsDev || result.Outdated {
		t.Fatalf("expected dev build that is never outdated, got %+v", result)
	}
	if result.Latest != "9.0.0" {
		t.Fatalf("expected latest 9.0.0, got %s", result.Latest)
	}
}

func TestCheckInvalidCurrentVersion(t *testing.T) {
	var calls atomic.Int32
	checker := newTestChecker(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	})

	if _, err := checker.Check(context.Background(), "not-a-version"); err == nil {
		t.Fatal("expected error for invalid current version")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request for invalid current version, got %d", calls.Load())
	}
}

func TestCheckInvalidLatest(t *testing.T) {
	checker := newTestChecker(t, releasesHandler(`[{"tag_name":"nightly"}]`))

	_, err := checker.Check(context.Background(), "1.0.0")
	if err == nil || !strings.Contains(err.Error(), "nightly") {
		t.Fatalf("expected invalid tag error, got %v", err)
	}
}

func TestCheckSendsGitHubHeaders(t *testing.T) {
	checker := newTestChecker(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("unexpected Accept header %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "pplus-installer" {
			t.Errorf("unexpected User-Agent header %q", got)
		}
		_, _ = w.Write([]byte(`[{"tag_name":"1.0.0"}]`))
	})

	if _, err := checker.Check(context.Background(), "1.0.0"); err != nil {
		t.Fatalf("Check error: %v", err)
	}
}

func TestFetchLatestReleaseVersion_RequestError(t *testing.T) {
	checker := &Checker{URL: "http://[::1", Client: http.DefaultClient}

	if _, err := checker.fetchLatestReleaseVersion(context.Background()); err == nil {
		t.Fatal("expected error for invalid releases URL")
	}
}

func TestFetchLatestReleaseVersion_DoErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	checker := &Checker{
		URL: "https://example.com",
		Client: &http.Client{
			Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
				calls.Add(1)
				return nil, errors.New("boom")
			}),
		},
	}

	if _, err := checker.fetchLatestReleaseVersion(context.Background()); err == nil {
		t.Fatal("expected error for failed releases request")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls.Load())
	}
}

func TestFetchLatestReleaseVersion_StatusError(t *testing.T) {
	checker := newTestChecker(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := checker.fetchLatestReleaseVersion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
	if IsRateLimitError(err) {
		t.Fatalf("expected non-rate-limit error, got %T", err)
	}
}

func TestFetchLatestReleaseVersion_RateLimit429(t *testing.T) {
	checker := newTestChecker(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := checker.fetchLatestReleaseVersion(context.Background())
	var rl *RateLimitError
	if !errors.As(err, &rl) || rl.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected RateLimitError with 429, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "remaining=unknown") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFetchLatestReleaseVersion_RateLimit403WithRemainingZero(t *testing.T) {
	checker := newTestChecker(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := checker.fetchLatestReleaseVersion(context.Background())
	if !IsRateLimitError(err) {
		t.Fatalf("expected rate limit error, got %T: %v", err, err)
	}
	var rl *RateLimitError
	if !errors.As(err, &rl) || rl.Remaining == nil || *rl.Remaining != 0 {
		t.Fatalf("expected remaining=0, got %#v", rl)
	}
}

func TestFetchLatestReleaseVersion_ForbiddenIsNotAlwaysRateLimited(t *testing.T) {
	for _, remaining := range []string{"", "5", "lots"} {
		t.Run("remaining="+remaining, func(t *testing.T) {
			checker := newTestChecker(t, func(w http.ResponseWriter, _ *http.Request) {
				if remaining != "" {
					w.Header().Set("X-RateLimit-Remaining", remaining)
				}
				w.WriteHeader(http.StatusForbidden)
			})

			_, err := checker.fetchLatestReleaseVersion(context.Background())
			if err == nil {
				t.Fatal("expected error for forbidden")
			}
			if IsRateLimitError(err) {
				t.Fatalf("expected non-rate-limit error, got %T: %v", err, err)
			}
		})
	}
}

func TestFetchLatestReleaseVersion_FeedErrors(t *testing.T) {
	tests := map[string]string{
		"decode":      `{"tag_name":"1.0.0"}`,
		"empty feed":  `[]`,
		"missing tag": `[{"tag_name":"  "}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			checker := newTestChecker(t, releasesHandler(body))
			if _, err := checker.fetchLatestReleaseVersion(context.Background()); err == nil {
				t.Fatalf("expected error for %s", body)
			}
		})
	}
}

func TestNewCheckerDefaults(t *testing.T) {
	checker := NewChecker(" ")
	if checker.URL != DefaultReleasesURL {
		t.Fatalf("expected default URL, got %s", checker.URL)
	}
	if checker.Client == nil {
		t.Fatal("expected default client")
	}
}

func TestOpenDownloadPage(t *testing.T) {
	orig := openURL
	t.Cleanup(func() { openURL = orig })

	var opened string
	openURL = func(url string) error {
		opened = url
		return nil
	}
	if err := OpenDownloadPage(DefaultDownloadURL); err != nil {
		t.Fatalf("OpenDownloadPage error: %v", err)
	}
	if opened != DefaultDownloadURL {
		t.Fatalf("expected %s to be opened, got %s", DefaultDownloadURL, opened)
	}

	openURL = func(string) error { return errors.New("no browser") }
	if err := OpenDownloadPage("https://example.com"); err == nil || !strings.Contains(err.Error(), "no browser") {
		t.Fatalf("expected wrapped browser error, got %v", err)
	}
}
