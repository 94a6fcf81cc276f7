// Package provider consumes external LLM services: given a keyword
// set, produce a short session name. Every backend is interchangeable
// behind the Provider interface; callers treat any failure or empty
// result as "nothing usable" and fall back.
package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// NameRequest carries the keyword evidence for one session.
type NameRequest struct {
	// Keywords are ranked, most relevant first.
	Keywords []string
	// Date is the session start date, context only.
	Date string
}

// Provider generates short folder names from session keywords.
type Provider interface {
	// SuggestName returns a short dash-separated name for the session.
	// An empty result means the provider had nothing usable to offer.
	SuggestName(ctx context.Context, req NameRequest) (string, error)

	// Name returns the provider identifier (e.g. "stub", "openai").
	Name() string
}

const systemPrompt = `You name folders of desktop screenshots. Given keywords extracted from one work session, respond with a short lowercase name of at most four words joined by dashes, like "webgpu-perf-tests". Respond with the name only, no explanation.`

func userPrompt(req NameRequest) string {
	if req.Date != "" {
		return fmt.Sprintf("Session date: %s\nKeywords: %s", req.Date, strings.Join(req.Keywords, ", "))
	}
	return "Keywords: " + strings.Join(req.Keywords, ", ")
}

var nameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// CleanResponse normalizes a model reply into a single name token:
// first line only, lowercased, quotes and stray characters dropped,
// words joined by dashes. Returns "" when nothing usable remains.
func CleanResponse(raw string) string {
	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.Trim(line, `"'.`)
	line = strings.ToLower(line)
	line = strings.ReplaceAll(line, " ", "-")
	line = strings.ReplaceAll(line, "_", "-")
	line = nameChars.ReplaceAllString(line, "")
	for strings.Contains(line, "--") {
		line = strings.ReplaceAll(line, "--", "-")
	}
	return strings.Trim(line, "-")
}
