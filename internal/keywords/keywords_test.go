package keywords

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Run("filters denylist and short tokens", func(t *testing.T) {
		tokens := Tokenize("Chrome browser at localhost showing webgpu performance ab")
		for _, tok := range tokens {
			switch tok {
			case "chrome", "browser", "localhost", "ab":
				t.Errorf("Token %q should have been filtered", tok)
			}
		}
		if !contains(tokens, "webgpu") || !contains(tokens, "performance") {
			t.Errorf("Expected webgpu and performance in %v", tokens)
		}
	})

	t.Run("lowercases", func(t *testing.T) {
		tokens := Tokenize("WEBGPU Rendering")
		if !contains(tokens, "webgpu") || !contains(tokens, "rendering") {
			t.Errorf("Expected lowercase tokens, got %v", tokens)
		}
	})

	t.Run("boosts project-shaped tokens", func(t *testing.T) {
		tokens := Tokenize("my-project")
		if n := count(tokens, "my-project"); n != 2 {
			t.Errorf("Expected boosted token emitted twice, got %d in %v", n, tokens)
		}
		tokens = Tokenize("RenderPipeline")
		if n := count(tokens, "renderpipeline"); n != 2 {
			t.Errorf("Expected CamelCase token boosted, got %d in %v", n, tokens)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if tokens := Tokenize(""); len(tokens) != 0 {
			t.Errorf("Expected no tokens, got %v", tokens)
		}
	})
}

func TestIsProjectToken(t *testing.T) {
	cases := map[string]bool{
		"my-project": true,
		"snake_case": true,
		"sprint23":   true,
		"abc-123":    true,
		"rendering":  false,
		"tests":      false,
	}
	for tok, want := range cases {
		if got := IsProjectToken(tok); got != want {
			t.Errorf("IsProjectToken(%q) = %v, want %v", tok, got, want)
		}
	}
}

func TestTop(t *testing.T) {
	tokens := []string{"alpha", "beta", "alpha", "gamma", "beta", "alpha"}

	top := Top(tokens, 2)
	if len(top) != 2 || top[0] != "alpha" || top[1] != "beta" {
		t.Errorf("Top = %v, want [alpha beta]", top)
	}

	t.Run("ties break on first appearance", func(t *testing.T) {
		top := Top([]string{"one", "two", "three"}, 3)
		if top[0] != "one" || top[1] != "two" || top[2] != "three" {
			t.Errorf("Expected input order on ties, got %v", top)
		}
	})

	t.Run("project tokens outrank plain ones", func(t *testing.T) {
		top := Top([]string{"plain", "plain", "my-proj", "my-proj"}, 1)
		if len(top) != 1 || top[0] != "my-proj" {
			t.Errorf("Expected my-proj first, got %v", top)
		}
	})

	if Top(nil, 3) != nil {
		t.Error("Expected nil for empty input")
	}
}

func TestJaccard(t *testing.T) {
	a := []string{"webgpu", "performance", "tests"}
	b := []string{"webgpu", "rendering", "tests"}

	if got := Jaccard(a, b); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Jaccard = %v, want 0.5", got)
	}

	t.Run("symmetric", func(t *testing.T) {
		if Jaccard(a, b) != Jaccard(b, a) {
			t.Error("Jaccard is not symmetric")
		}
	})

	t.Run("empty sets", func(t *testing.T) {
		if got := Jaccard(nil, nil); got != 0 {
			t.Errorf("Jaccard(∅, ∅) = %v, want 0", got)
		}
		if got := Jaccard(a, nil); got != 0 {
			t.Errorf("Jaccard(a, ∅) = %v, want 0", got)
		}
	})

	t.Run("identical sets", func(t *testing.T) {
		if got := Jaccard(a, a); got != 1.0 {
			t.Errorf("Jaccard(a, a) = %v, want 1.0", got)
		}
	})

	t.Run("duplicates ignored", func(t *testing.T) {
		if got := Jaccard([]string{"x", "x", "y"}, []string{"y", "x"}); got != 1.0 {
			t.Errorf("Jaccard with duplicates = %v, want 1.0", got)
		}
	})
}

func contains(tokens []string, want string) bool {
	return count(tokens, want) > 0
}

func count(tokens []string, want string) int {
	n := 0
	for _, tok := range tokens {
		if tok == want {
			n++
		}
	}
	return n
}
