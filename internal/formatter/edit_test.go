package formatter

import (
	"math"
	"testing"
)

func TestFullRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Range
	}{
		{"empty", "", Range{End: Position{0, 0}}},
		{"single line", "abc", Range{End: Position{0, 3}}},
		{"trailing newline", "abc\n", Range{End: Position{1, 0}}},
		{"crlf", "a\r\nbc", Range{End: Position{1, 2}}},
		{"lone cr", "a\rbc\r", Range{End: Position{2, 0}}},
		{"utf16 surrogate pair", "x\n\U0001D400y", Range{End: Position{1, 3}}},
		{"bmp accent", "é", Range{End: Position{0, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FullRange(tt.text); got != tt.want {
				t.Errorf("FullRange(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	text := "hello\nworld"
	tests := []struct {
		name string
		in   Range
		want Range
	}{
		{
			name: "inside",
			in:   Range{Position{0, 1}, Position{1, 2}},
			want: Range{Position{0, 1}, Position{1, 2}},
		},
		{
			name: "character past line end",
			in:   Range{Position{0, 99}, Position{1, 99}},
			want: Range{Position{0, 5}, Position{1, 5}},
		},
		{
			name: "line past end",
			in:   Range{Position{0, 0}, Position{math.MaxInt, math.MaxInt}},
			want: Range{Position{0, 0}, Position{1, 5}},
		},
		{
			name: "negative",
			in:   Range{Position{-1, -1}, Position{0, -4}},
			want: Range{Position{0, 0}, Position{0, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(text, tt.in); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		edits   []TextEdit
		want    string
		wantErr bool
	}{
		{
			name: "no edits",
			text: "abc",
			want: "abc",
		},
		{
			name:  "full replacement",
			text:  "\\begin{document}\nx\n\\end{document}\n",
			edits: []TextEdit{{Range: FullRange("\\begin{document}\nx\n\\end{document}\n"), NewText: "formatted\n"}},
			want:  "formatted\n",
		},
		{
			name:  "unbounded range",
			text:  "a\nb",
			edits: []TextEdit{{Range: unbounded, NewText: "z"}},
			want:  "z",
		},
		{
			name: "two edits out of order",
			text: "one\ntwo\nthree",
			edits: []TextEdit{
				{Range: Range{Position{2, 0}, Position{2, 5}}, NewText: "3"},
				{Range: Range{Position{0, 0}, Position{0, 3}}, NewText: "1"},
			},
			want: "1\ntwo\n3",
		},
		{
			name:  "surrogate pair columns",
			text:  "\U0001D400ab",
			edits: []TextEdit{{Range: Range{Position{0, 2}, Position{0, 3}}, NewText: "X"}},
			want:  "\U0001D400Xb",
		},
		{
			name: "overlap",
			text: "abcdef",
			edits: []TextEdit{
				{Range: Range{Position{0, 0}, Position{0, 3}}, NewText: ""},
				{Range: Range{Position{0, 2}, Position{0, 4}}, NewText: ""},
			},
			wantErr: true,
		},
		{
			name:    "reversed range",
			text:    "abc",
			edits:   []TextEdit{{Range: Range{Position{0, 2}, Position{0, 1}}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.text, tt.edits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}
