// Package namer assigns display names to sessions. Naming is a layered
// strategy, not exception-driven control flow: the LLM path, the
// keyword path and the timestamp default each return an optional
// result, and the first non-empty one wins. Nothing here ever errors
// out to the caller.
package namer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
	"github.com/felixgeelhaar/shotsort/internal/keywords"
	"github.com/felixgeelhaar/shotsort/internal/provider"
)

const (
	datePrefixFormat = "2006-01-02"
	timePrefixFormat = "150405"

	defaultMaxKeywords = 5
	fallbackKeywords   = 3
)

// Namer maps sessions to filesystem-safe display names.
type Namer struct {
	provider    Provider
	maxKeywords int
	timeout     time.Duration
	warn        func(msg string, err error)
}

// Provider is the external name-generation collaborator. See the
// provider package for implementations.
type Provider interface {
	SuggestName(ctx context.Context, req provider.NameRequest) (string, error)
	Name() string
}

// Option configures a Namer.
type Option func(*Namer)

// WithProvider enables the LLM tier of the naming chain.
func WithProvider(p Provider) Option {
	return func(n *Namer) { n.provider = p }
}

// WithTimeout bounds each provider call. A call that exceeds the wait
// counts as a failure and the chain falls through to keywords.
func WithTimeout(d time.Duration) Option {
	return func(n *Namer) { n.timeout = d }
}

// WithWarn installs a warning sink for degraded provider calls.
func WithWarn(warn func(msg string, err error)) Option {
	return func(n *Namer) { n.warn = warn }
}

func New(opts ...Option) *Namer {
	n := &Namer{
		maxKeywords: defaultMaxKeywords,
		timeout:     20 * time.Second,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NameAll assigns a name to every session, in order. When smart is
// true the keyword/LLM path runs first; sessions it cannot name fall
// back to the timestamp default.
func (n *Namer) NameAll(ctx context.Context, sessions []*catalog.Session, smart bool) {
	if smart {
		for _, s := range sessions {
			s.Name = n.KeywordName(ctx, s)
		}
	}
	n.FillDefaults(sessions)
}

// KeywordName runs the keyword/LLM path for one session: rank the
// session's keywords, ask the provider for a short name, and on any
// failure fall back to the top keywords themselves. Returns "" when no
// keywords survive filtering; the caller then applies the timestamp
// default. The result, when non-empty, carries the timestamp prefix
// and is filesystem-safe.
func (n *Namer) KeywordName(ctx context.Context, s *catalog.Session) string {
	var tokens []string
	for _, r := range s.Records {
		tokens = append(tokens, r.Keywords...)
	}
	top := keywords.Top(tokens, n.maxKeywords)
	if len(top) == 0 {
		return ""
	}

	prefix := s.Start().UTC().Format(datePrefixFormat + "_" + timePrefixFormat)

	if name := n.suggest(ctx, s, top); name != "" {
		return prefix + "_" + name
	}

	kws := top
	if len(kws) > fallbackKeywords {
		kws = kws[:fallbackKeywords]
	}
	if name := Sanitize(strings.Join(kws, "-")); name != "" {
		return prefix + "_" + name
	}
	return ""
}

// suggest asks the provider, bounded by the configured wait. Any
// failure degrades to "".
func (n *Namer) suggest(ctx context.Context, s *catalog.Session, top []string) string {
	if n.provider == nil {
		return ""
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	name, err := n.provider.SuggestName(ctx, provider.NameRequest{
		Keywords: top,
		Date:     s.Start().UTC().Format(datePrefixFormat),
	})
	if err != nil {
		if n.warn != nil {
			n.warn("name provider failed, falling back to keywords", err)
		}
		return ""
	}
	return Sanitize(name)
}

// FillDefaults assigns the timestamp-based default name to every
// session that has none yet: <start-date>_<start-time>_session_<n>,
// where n is the 1-based chronological index among all sessions
// sharing the start date.
func (n *Namer) FillDefaults(sessions []*catalog.Session) {
	counts := make(map[string]int)
	for _, s := range sessions {
		date := s.Start().UTC().Format(datePrefixFormat)
		counts[date]++
		if s.Name != "" {
			continue
		}
		s.Name = fmt.Sprintf("%s_%s_session_%d",
			date, s.Start().UTC().Format(timePrefixFormat), counts[date])
	}
}
