package namer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
	"github.com/felixgeelhaar/shotsort/internal/provider"
)

func sessionAt(start time.Time, kws ...string) *catalog.Session {
	s := &catalog.Session{}
	s.Add(&catalog.Record{Path: "a.png", CapturedAt: start, Keywords: kws})
	s.Add(&catalog.Record{Path: "b.png", CapturedAt: start.Add(time.Minute)})
	return s
}

func TestFillDefaults(t *testing.T) {
	day1 := time.Date(2025, 6, 19, 14, 30, 15, 0, time.UTC)
	day2 := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)

	sessions := []*catalog.Session{
		sessionAt(day1),
		sessionAt(day1.Add(2 * time.Hour)),
		sessionAt(day2),
	}

	New().FillDefaults(sessions)

	want := []string{
		"2025-06-19_143015_session_1",
		"2025-06-19_163015_session_2",
		"2025-06-20_090000_session_1",
	}
	for i, s := range sessions {
		if s.Name != want[i] {
			t.Errorf("Session %d name = %q, want %q", i, s.Name, want[i])
		}
	}
}

func TestFillDefaultsSkipsNamed(t *testing.T) {
	day := time.Date(2025, 6, 19, 10, 0, 0, 0, time.UTC)
	named := sessionAt(day)
	named.Name = "2025-06-19_100000_webgpu"
	unnamed := sessionAt(day.Add(3 * time.Hour))

	New().FillDefaults([]*catalog.Session{named, unnamed})

	if named.Name != "2025-06-19_100000_webgpu" {
		t.Errorf("Named session was overwritten: %q", named.Name)
	}
	// Index counts the named session too.
	if unnamed.Name != "2025-06-19_130000_session_2" {
		t.Errorf("Unnamed session = %q, want session_2", unnamed.Name)
	}
}

func TestKeywordName(t *testing.T) {
	start := time.Date(2025, 6, 19, 14, 30, 15, 0, time.UTC)

	t.Run("provider success", func(t *testing.T) {
		p := &provider.StubProvider{Result: "webgpu-perf"}
		n := New(WithProvider(p))

		got := n.KeywordName(context.Background(), sessionAt(start, "webgpu", "performance"))
		if got != "2025-06-19_143015_webgpu-perf" {
			t.Errorf("KeywordName = %q", got)
		}
	})

	t.Run("provider failure falls back to keywords", func(t *testing.T) {
		p := &provider.StubProvider{Err: errors.New("unreachable")}
		var warned bool
		n := New(WithProvider(p), WithWarn(func(string, error) { warned = true }))

		got := n.KeywordName(context.Background(), sessionAt(start, "webgpu", "performance"))
		if !strings.HasPrefix(got, "2025-06-19_143015_") {
			t.Fatalf("Expected timestamp prefix, got %q", got)
		}
		if !strings.Contains(got, "webgpu") {
			t.Errorf("Expected keyword fallback, got %q", got)
		}
		if !warned {
			t.Error("Expected a degradation warning")
		}
	})

	t.Run("empty provider result falls back", func(t *testing.T) {
		p := &provider.StubProvider{Result: "!!!"}
		n := New(WithProvider(p))

		got := n.KeywordName(context.Background(), sessionAt(start, "webgpu"))
		if !strings.Contains(got, "webgpu") {
			t.Errorf("Expected keyword fallback, got %q", got)
		}
	})

	t.Run("no keywords yields empty", func(t *testing.T) {
		n := New(WithProvider(provider.NewStubProvider()))
		if got := n.KeywordName(context.Background(), sessionAt(start)); got != "" {
			t.Errorf("Expected empty for keyword-less session, got %q", got)
		}
	})

	t.Run("provider timeout degrades", func(t *testing.T) {
		p := &slowProvider{delay: 100 * time.Millisecond}
		n := New(WithProvider(p), WithTimeout(time.Millisecond))

		got := n.KeywordName(context.Background(), sessionAt(start, "webgpu"))
		if !strings.Contains(got, "webgpu") {
			t.Errorf("Expected keyword fallback after timeout, got %q", got)
		}
	})
}

func TestNameAllNeverEmpty(t *testing.T) {
	start := time.Date(2025, 6, 19, 14, 30, 15, 0, time.UTC)
	sessions := []*catalog.Session{
		sessionAt(start),                           // no keywords at all
		sessionAt(start.Add(2*time.Hour), "webgpu"),
	}
	p := &provider.StubProvider{Err: errors.New("LLM down")}
	n := New(WithProvider(p))

	n.NameAll(context.Background(), sessions, true)

	for i, s := range sessions {
		if s.Name == "" {
			t.Errorf("Session %d has empty name", i)
		}
		if Sanitize(s.Name) != s.Name {
			t.Errorf("Session %d name %q is not filesystem-safe", i, s.Name)
		}
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"webgpu-perf", "webgpu-perf"},
		{"a/b\\c:d", "a-b-c-d"},
		{"  spaced out  ", "spaced-out"},
		{"trailing---", "trailing"},
		{"...", ""},
		{"", ""},
		{"name?.png", "name-.png"},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type slowProvider struct {
	delay time.Duration
}

func (s *slowProvider) SuggestName(ctx context.Context, req provider.NameRequest) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(s.delay):
		return "too-late", nil
	}
}

func (s *slowProvider) Name() string { return "slow" }
