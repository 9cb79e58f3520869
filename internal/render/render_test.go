package render

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Width != 80 {
		t.Errorf("Width = %d, want 80", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("Style = %q, want dark", opts.Style)
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().WithWidth(120).WithStyle("light")
	if opts.Width != 120 {
		t.Errorf("Width = %d", opts.Width)
	}
	if opts.Style != "light" {
		t.Errorf("Style = %q", opts.Style)
	}
	// Original defaults untouched (value semantics)
	if DefaultOptions().Width != 80 {
		t.Error("DefaultOptions mutated")
	}
}

func TestMarkdownRendersContent(t *testing.T) {
	out, err := Markdown("# Title\n\nplain **bold** text", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("output missing heading text: %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Errorf("output missing body text: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	long := strings.Repeat("word ", 60)
	out, err := MarkdownWithWidth(long, 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth: %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		// Allow slack for ANSI escapes; the raw line would be ~300 chars
		// if wrapping were broken.
		if len(line) > 200 {
			t.Errorf("line not wrapped: %d chars", len(line))
		}
	}
}

func TestRendererPoolReuse(t *testing.T) {
	opts := DefaultOptions()
	for i := 0; i < 5; i++ {
		if _, err := Markdown("test", opts); err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
	}

	globalPool.mu.RLock()
	defer globalPool.mu.RUnlock()
	if len(globalPool.pools) == 0 {
		t.Error("expected pooled renderer")
	}
}

func TestCacheKeyDistinguishesOptions(t *testing.T) {
	a := cacheKey(DefaultOptions())
	b := cacheKey(DefaultOptions().WithWidth(100))
	if a == b {
		t.Error("cache keys should differ by width")
	}
}

func TestLoadOptionsFromConfigEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GLAMOUR_STYLE", "notty")

	opts := LoadOptionsFromConfig()
	if opts.Style != "notty" {
		t.Errorf("Style = %q, want notty", opts.Style)
	}
}
