package command

import (
	"strings"
	"unicode"
)

// Invocation is a parsed command message.
type Invocation struct {
	Name string
	// Args is everything after the command name with surrounding
	// whitespace removed.
	Args string
}

// Parse recognizes "<prefix><name> [args]" messages.
// It returns false when content is not a command.
func Parse(prefix, content string) (Invocation, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return Invocation{}, false
	}
	rest := content[len(prefix):]
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end == 0 {
		return Invocation{}, false
	}
	if end < 0 {
		end = len(rest)
	}
	name := rest[:end]
	if name == "" {
		return Invocation{}, false
	}
	return Invocation{
		Name: name,
		Args: strings.TrimSpace(rest[end:]),
	}, true
}

// SplitID splits args into a leading ID token and the remaining text.
// The ID may be double-quoted to include spaces. The remainder keeps its
// inner whitespace and line breaks; only leading whitespace is dropped.
func SplitID(args string) (id, text string) {
	args = strings.TrimLeftFunc(args, unicode.IsSpace)
	if args == "" {
		return "", ""
	}

	if args[0] == '"' {
		if end := strings.IndexByte(args[1:], '"'); end >= 0 {
			id = args[1 : end+1]
			text = args[end+2:]
			return id, strings.TrimLeftFunc(text, unicode.IsSpace)
		}
	}

	end := strings.IndexFunc(args, unicode.IsSpace)
	if end < 0 {
		return args, ""
	}
	return args[:end], strings.TrimLeftFunc(args[end:], unicode.IsSpace)
}
