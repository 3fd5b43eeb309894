package tui

import "strings"

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

var commandAliases = map[string]string{
	"l": "load", "load": "load",
	"c": "count", "count": "count",
	"t": "top", "top": "top",
	"a": "ask", "ask": "ask",
	"s": "summary", "summary": "summary", "summarize": "summary",
	"k": "key", "key": "key",
	"e": "events", "events": "events",
	"h": "help", "help": "help",
	"q": "quit", "quit": "quit", "exit": "quit",
}

// ParseCommand parses a command string (without the leading ':').
// Aliases resolve to their full name; unknown names are kept as typed.
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if full, ok := commandAliases[cmd.Name]; ok {
		cmd.Name = full
	}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// expandHome replaces a leading "~/" with home.
func expandHome(path, home string) string {
	if home != "" && strings.HasPrefix(path, "~/") {
		return home + path[1:]
	}
	return path
}
