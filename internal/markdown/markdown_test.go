package markdown

import (
	"strings"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"- 1. **", true},
		{"   \n\t ", true},
		{"# \n> \n___", true},
		{"<p></p>", true},
		{"<div>\n- </div>", true},
		{"<br>", true},
		{"<b>**</b>", true},
		{"<p>> 1.</p>", true},
		{"hello", false},
		{"- discussed roadmap", false},
		{"**bold**", false},
		{"<b>x</b>", false},
		{"<p>notes</p>", false},
		{"a < b", false},
	}
	for _, tc := range cases {
		if got := IsEmpty(tc.in); got != tc.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// Documented heuristic limits; a change here is a contract change.
func TestIsEmpty_KnownMisclassifications(t *testing.T) {
	for _, in := range []string{"1984.", "---", "<br>"} {
		if !IsEmpty(in) {
			t.Errorf("IsEmpty(%q) = false, documented false positive expects true", in)
		}
	}
	for _, in := range []string{"[]()", "` `", "&nbsp;"} {
		if IsEmpty(in) {
			t.Errorf("IsEmpty(%q) = true, documented false negative expects false", in)
		}
	}
}

func TestGoldmarkRender(t *testing.T) {
	r := NewGoldmark()
	out, err := r.Render("- discussed **roadmap**")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<li>") || !strings.Contains(s, "<strong>roadmap</strong>") {
		t.Errorf("unexpected html: %q", s)
	}
}

func TestGoldmarkRender_RawHTMLOmitted(t *testing.T) {
	r := NewGoldmark()
	out, err := r.Render("<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Errorf("raw html passed through: %q", out)
	}
}
