package plantuml

// Snippet is a named block of text the editors can insert.
type Snippet struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Built-in snippets.
var (
	SnippetLoop  = Snippet{Name: "loop", Text: "\nloop [condition]\n  \nend\n"}
	SnippetAlt   = Snippet{Name: "alt", Text: "\nalt [condition]\n  \nelse\n  \nend\n"}
	SnippetClass = Snippet{Name: "class", Text: "\nclass ClassName {\n  +attribute: Type\n  +method()\n}\n"}
)

// Snippets lists the built-in snippets in toolbar order.
var Snippets = []Snippet{SnippetLoop, SnippetAlt, SnippetClass}

// DefaultCode is the document an editor starts with when no draft exists.
const DefaultCode = `@startuml
actor User
participant "umlpad"
User -> umlpad: write a diagram
umlpad --> User
@enduml`

// LookupSnippet returns the built-in snippet with the given name.
func LookupSnippet(name string) (Snippet, bool) {
	for _, s := range Snippets {
		if s.Name == name {
			return s, true
		}
	}
	return Snippet{}, false
}

// InsertSnippet replaces the rune range [start, end) of text with snippet and
// returns the new text and the cursor offset just after the inserted text.
// Offsets are clamped to the text, and a reversed range is swapped.
func InsertSnippet(text string, start, end int, snippet string) (string, int) {
	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	if end < start {
		start, end = end, start
	}

	inserted := []rune(snippet)
	out := make([]rune, 0, len(runes)-(end-start)+len(inserted))
	out = append(out, runes[:start]...)
	out = append(out, inserted...)
	out = append(out, runes[end:]...)
	return string(out), start + len(inserted)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
