package slugger

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces", "multiple-spaces"},
		{"already-a-slug", "already-a-slug"},
		{"MiXeD CaSe", "mixed-case"},
		{"dashes --- everywhere", "dashes-everywhere"},
		{"---", ""},
		{"C'est l'été", "cest-lt"},
		{"snake_case_stays", "snake_case_stays"},
		{"100% legit (really)", "100-legit-really"},
	}

	for _, tc := range cases {
		got := Make(tc.in)
		if tc.want == "" {
			// Inputs with no usable characters fall back to a generated slug.
			if !strings.HasPrefix(got, "untitled-") {
				t.Errorf("Make(%q) = %q, want untitled- fallback", tc.in, got)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeEmptyFallbackIsNotConstant(t *testing.T) {
	a := Make("")
	b := Make("")
	if a == b {
		t.Errorf("fallback slugs should differ between calls, got %q twice", a)
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("hello-world", 1); got != "hello-world-1" {
		t.Errorf("WithSuffix = %q, want hello-world-1", got)
	}
}
