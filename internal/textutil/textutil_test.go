package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncateKeepsShortText(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Fatalf("expected empty for zero limit, got %q", got)
	}
}

func TestTruncateAddsEllipsis(t *testing.T) {
	got := Truncate("abcdefghij", 8)
	if got != "abcde..." {
		t.Fatalf("expected abcde..., got %q", got)
	}
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	cases := []struct {
		text  string
		limit int
	}{
		{text: "héllo wörld, ça va très bien", limit: 8},
		{text: "日本語のテキストです", limit: 7},
		{text: "emoji 🚀🚀🚀🚀 rocket", limit: 9},
		{text: "ñññññ", limit: 2},
	}
	for _, tc := range cases {
		got := Truncate(tc.text, tc.limit)
		if !utf8.ValidString(got) {
			t.Fatalf("Truncate(%q, %d) produced invalid UTF-8 %q", tc.text, tc.limit, got)
		}
		if w := ansi.StringWidth(got); w > tc.limit {
			t.Fatalf("Truncate(%q, %d) is %d cells wide", tc.text, tc.limit, w)
		}
	}
}

func TestCompactSingleLine(t *testing.T) {
	got := CompactSingleLine("  upstream\n\terror:   bad   key  ", 100)
	if got != "upstream error: bad key" {
		t.Fatalf("unexpected compact text %q", got)
	}
	got = CompactSingleLine("délai\n dépassé pour la requête", 12)
	if !utf8.ValidString(got) || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected valid truncated text, got %q", got)
	}
}

func TestWrapKeepsLineBreaksAndWidth(t *testing.T) {
	got := Wrap("one two three four five\nsix", 9)
	for _, line := range strings.Split(got, "\n") {
		if ansi.StringWidth(line) > 9 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
	if !strings.HasSuffix(got, "\nsix") {
		t.Fatalf("expected original break kept, got %q", got)
	}
	if Wrap("untouched", 0) != "untouched" {
		t.Fatalf("expected zero width to leave text alone")
	}
}
