package provider

import (
	"context"
	"strings"
)

// StubProvider is a deterministic provider for tests and offline use.
// When Result is empty it derives a name from the first two keywords.
type StubProvider struct {
	Result string
	Err    error
	// Requests records every request, for assertions.
	Requests []NameRequest
}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (s *StubProvider) SuggestName(ctx context.Context, req NameRequest) (string, error) {
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return "", s.Err
	}
	if s.Result != "" {
		return s.Result, nil
	}

	kws := req.Keywords
	if len(kws) > 2 {
		kws = kws[:2]
	}
	return CleanResponse(strings.Join(kws, "-")), nil
}

func (s *StubProvider) Name() string {
	return "stub"
}
