package ui

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Buy milk", "Buy milk"},
		{"unicode", "Café ☕ 日本", "Café ☕ 日本"},
		{"clear screen", "evil\x1b[2J", "evil"},
		{"sgr color", "\x1b[31mred\x1b[0m", "red"},
		{"osc52 clipboard", "a\x1b]52;c;aGFja2Vk\x07b", "ab"},
		{"osc st terminated", "a\x1b]0;title\x1b\\b", "ab"},
		{"line breaks", "one\ntwo\r\tthree", "one two  three"},
		{"del", "a\x7fb", "ab"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PlainText(tc.input); got != tc.want {
				t.Errorf("PlainText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
