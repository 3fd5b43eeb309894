package tui

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"load /tmp/chat.txt", Command{Name: "load", Args: "/tmp/chat.txt"}},
		{"  l   ~/export.txt ", Command{Name: "load", Args: "~/export.txt"}},
		{"count good morning", Command{Name: "count", Args: "good morning"}},
		{"ASK who planned the trip?", Command{Name: "ask", Args: "who planned the trip?"}},
		{"summarize", Command{Name: "summary"}},
		{"q", Command{Name: "quit"}},
		{"frobnicate x", Command{Name: "frobnicate", Args: "x"}},
		{"", Command{}},
	}
	for _, tt := range tests {
		if got := ParseCommand(tt.input); got != tt.want {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		path, home, want string
	}{
		{"~/chat.txt", "/home/ana", "/home/ana/chat.txt"},
		{"/abs/chat.txt", "/home/ana", "/abs/chat.txt"},
		{"~/chat.txt", "", "~/chat.txt"},
		{"chat~/x.txt", "/home/ana", "chat~/x.txt"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.path, tt.home); got != tt.want {
			t.Errorf("expandHome(%q, %q) = %q, want %q", tt.path, tt.home, got, tt.want)
		}
	}
}
