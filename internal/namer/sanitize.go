package namer

import (
	"regexp"
	"strings"
)

var (
	unsafeChars  = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
	reservedName = regexp.MustCompile(`^\.+$`)
)

// Sanitize reduces a candidate name to characters valid in a path
// segment. Disallowed characters become dashes, runs collapse, and
// leading/trailing separators are trimmed. Returns "" when nothing
// usable remains; callers fall through to the next naming tier.
func Sanitize(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeChars.ReplaceAllString(name, "-")
	name = dashRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-. ")
	if reservedName.MatchString(name) {
		return ""
	}
	return name
}
