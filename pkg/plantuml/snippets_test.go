package plantuml

import "testing"

func TestInsertSnippet(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		snippet    string
		want       string
		wantCursor int
	}{
		{"at end", "ab", 2, 2, "X", "abX", 3},
		{"at start", "ab", 0, 0, "X", "Xab", 1},
		{"replace selection", "abcd", 1, 3, "XY", "aXYd", 3},
		{"reversed selection", "abcd", 3, 1, "XY", "aXYd", 3},
		{"clamped", "ab", -5, 99, "X", "X", 1},
		{"runes", "äö", 1, 1, "ü", "äüö", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cursor := InsertSnippet(tt.text, tt.start, tt.end, tt.snippet)
			if got != tt.want || cursor != tt.wantCursor {
				t.Errorf("InsertSnippet() = %q, %d; want %q, %d", got, cursor, tt.want, tt.wantCursor)
			}
		})
	}
}

func TestLookupSnippet(t *testing.T) {
	for _, name := range []string{"loop", "alt", "class"} {
		s, ok := LookupSnippet(name)
		if !ok || s.Name != name || s.Text == "" {
			t.Errorf("LookupSnippet(%q) = %+v, %v", name, s, ok)
		}
	}
	if _, ok := LookupSnippet("nope"); ok {
		t.Error("unknown snippet should not be found")
	}
}
