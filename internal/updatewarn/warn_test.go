package updatewarn

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/conn-castle/pplus-installer/internal/update"
)

type stubChecker struct {
	result update.CheckResult
	err    error
	calls  int
}

func (s *stubChecker) Check(context.Context, string) (update.CheckResult, error) {
	s.calls++
	return s.result, s.err
}

func TestWarnIfOutdated_NilChecker(t *testing.T) {
	var stderr bytes.Buffer
	WarnIfOutdated(context.Background(), nil, "v1.0.0", "https://example.test", &stderr)
	if stderr.Len() != 0 {
		t.Fatalf("expected no output, got %q", stderr.String())
	}
}

func TestWarnIfOutdated_Outcomes(t *testing.T) {
	cases := []struct {
		name   string
		result update.CheckResult
		err    error
		want   string
	}{
		{name: "network error", err: errors.New("dial tcp: no such host")},
		{name: "rate limit", err: &update.RateLimitError{StatusCode: 429, Status: "429 Too Many Requests"}},
		{name: "dev", result: update.CheckResult{CurrentIsDev: true, Latest: "2.0.0"}},
		{name: "current", result: update.CheckResult{Latest: "1.0.0", Current: "1.0.0"}},
		{name: "outdated", result: update.CheckResult{Outdated: true, Latest: "2.0.0", Current: "1.0.0"}, want: "A newer installer (2.0.0) is available; you are running 1.0.0. Download it from https://example.test"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := &stubChecker{result: tc.result, err: tc.err}
			var stderr bytes.Buffer
			WarnIfOutdated(context.Background(), checker, "v1.0.0", "https://example.test", &stderr)
			if checker.calls != 1 {
				t.Fatalf("expected one update check, got %d", checker.calls)
			}
			if tc.want == "" {
				if stderr.Len() != 0 {
					t.Fatalf("expected no output, got %q", stderr.String())
				}
				return
			}
			if !strings.Contains(stderr.String(), tc.want) {
				t.Fatalf("expected %q in output, got %q", tc.want, stderr.String())
			}
		})
	}
}

func TestWarnIfOutdated_NilWriter(t *testing.T) {
	checker := &stubChecker{result: update.CheckResult{Outdated: true, Latest: "2.0.0", Current: "1.0.0"}}
	WarnIfOutdated(context.Background(), checker, "v1.0.0", "https://example.test", nil)
	if checker.calls != 1 {
		t.Fatalf("expected one update check, got %d", checker.calls)
	}
}
