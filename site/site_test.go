package site

import (
	"strings"
	"testing"
)

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"javascript", "JavaScript"},
		{"git", "Git & GitHub"},
		{"next", "Next.js"},
		{"sveltekit", "SvelteKit"},
		{"rust", "rust"},
	}
	for _, tt := range tests {
		if got := CategoryLabel(tt.key); got != tt.want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestIsCategory(t *testing.T) {
	if !IsCategory("css") {
		t.Error("css should be a category")
	}
	if IsCategory("CSS") {
		t.Error("category keys are lowercase")
	}
	if IsCategory("") {
		t.Error("empty key should not be a category")
	}
}

func TestCategoryKeysSorted(t *testing.T) {
	keys := CategoryKeys()
	if len(keys) != 10 {
		t.Fatalf("len(CategoryKeys()) = %d, want 10", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys not sorted at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
}

func TestURLHasTrailingSlash(t *testing.T) {
	if !strings.HasSuffix(URL, "/") {
		t.Errorf("URL = %q, want trailing slash", URL)
	}
	if Image != "https://blackkspydo.com/social.png" {
		t.Errorf("Image = %q", Image)
	}
}
