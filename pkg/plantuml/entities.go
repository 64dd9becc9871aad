package plantuml

import (
	"regexp"
	"sort"
	"strings"
)

// Keywords are the PlantUML words the editors treat as keywords.
var Keywords = []string{
	"loop", "alt", "else", "end", "class", "actor", "participant",
	"interface", "enum", "abstract", "@startuml", "@enduml",
}

// MaxCompletions caps the number of options returned by [Complete].
const MaxCompletions = 10

// declPatterns match entity declarations. Group 1 is a quoted name,
// group 2 an unquoted one.
var declPatterns = []*regexp.Regexp{
	regexp.MustCompile(`participant\s+(?:"([^"]+)"|(\S+))`),
	regexp.MustCompile(`actor\s+(?:"([^"]+)"|(\S+))`),
	regexp.MustCompile(`class\s+(?:"([^"]+)"|(\S+))`),
	regexp.MustCompile(`interface\s+(?:"([^"]+)"|(\S+))`),
	regexp.MustCompile(`abstract\s+(?:class\s+)?(?:"([^"]+)"|(\S+))`),
	regexp.MustCompile(`enum\s+(?:"([^"]+)"|(\S+))`),
}

// ExtractEntities returns the unique entity names declared in source,
// sorted for stable output.
func ExtractEntities(source string) []string {
	seen := make(map[string]struct{})
	for _, line := range strings.Split(source, "\n") {
		for _, re := range declPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			if name == "" {
				name = m[2]
			}
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Complete returns up to [MaxCompletions] entity names from source that start
// with prefix, ignoring case. An empty prefix matches every entity.
func Complete(source, prefix string) []string {
	lower := strings.ToLower(prefix)
	var out []string
	for _, name := range ExtractEntities(source) {
		if !strings.HasPrefix(strings.ToLower(name), lower) {
			continue
		}
		out = append(out, name)
		if len(out) == MaxCompletions {
			break
		}
	}
	return out
}

// WordBefore returns the run of word characters ending at rune offset pos,
// and the offset where it starts.
func WordBefore(text string, pos int) (string, int) {
	runes := []rune(text)
	pos = clamp(pos, 0, len(runes))
	start := pos
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	return string(runes[start:pos]), start
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
