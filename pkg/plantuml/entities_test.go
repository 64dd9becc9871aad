package plantuml

import (
	"reflect"
	"testing"
)

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "empty",
			source: "",
			want:   []string{},
		},
		{
			name:   "sequence",
			source: "@startuml\nactor User\nparticipant \"Web Server\"\nUser -> \"Web Server\": hi\n@enduml",
			want:   []string{"User", "Web Server"},
		},
		{
			name:   "classes",
			source: "class Order\ninterface Payable\nenum Status\nabstract class Base\nabstract Shape",
			want:   []string{"Base", "Order", "Payable", "Shape", "Status"},
		},
		{
			name:   "duplicates",
			source: "actor Bob\nactor Bob\nparticipant Bob",
			want:   []string{"Bob"},
		},
		{
			name:   "indented",
			source: "  participant   Alice\n\tclass Foo",
			want:   []string{"Alice", "Foo"},
		},
		{
			name:   "no declarations",
			source: "Alice -> Bob: hello\nBob --> Alice",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.source)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEntities() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	source := "actor Alice\nactor alfred\nparticipant Bob\nclass Order"

	got := Complete(source, "al")
	want := []string{"Alice", "alfred"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Complete(al) = %q, want %q", got, want)
	}

	if got := Complete(source, ""); len(got) != 4 {
		t.Errorf("Complete(\"\") returned %d names, want 4", len(got))
	}

	if got := Complete(source, "zz"); len(got) != 0 {
		t.Errorf("Complete(zz) = %q, want none", got)
	}
}

func TestCompleteCap(t *testing.T) {
	var source string
	for _, c := range "abcdefghijklmno" {
		source += "class C" + string(c) + "\n"
	}
	if got := Complete(source, "C"); len(got) != MaxCompletions {
		t.Errorf("Complete returned %d names, want %d", len(got), MaxCompletions)
	}
}

func TestWordBefore(t *testing.T) {
	tests := []struct {
		text      string
		pos       int
		word      string
		wantStart int
	}{
		{"Alice -> Bo", 11, "Bo", 9},
		{"Alice", 5, "Alice", 0},
		{"Alice ", 6, "", 6},
		{"", 3, "", 0},
		{"ä_x1", 4, "_x1", 1},
	}

	for _, tt := range tests {
		word, start := WordBefore(tt.text, tt.pos)
		if word != tt.word || start != tt.wantStart {
			t.Errorf("WordBefore(%q, %d) = %q, %d; want %q, %d", tt.text, tt.pos, word, start, tt.word, tt.wantStart)
		}
	}
}
