package template

import "strings"

// tag is one eligible substitution tag occurrence within a body.
type tag struct {
	start   int // offset of "<%"
	end     int // offset just past "%>"
	name    string
	rawArgs string
	hasArgs bool
}

// nextTag finds the leftmost innermost eligible tag: a "<%...%>" span whose
// content holds no further "<%" (its arguments are fully literal) and whose
// parentheses balance. Resolution order matters for safety downstream, so
// this is an explicit scanner rather than a regex.
func nextTag(body string) (tag, bool) {
	from := 0
	for {
		start := indexFrom(body, "<%", from)
		if start < 0 {
			return tag{}, false
		}
		inner := indexFrom(body, "<%", start+2)
		close := indexFrom(body, "%>", start+2)
		if close < 0 {
			return tag{}, false
		}
		if inner >= 0 && inner < close {
			// A nested tag opens before this one closes; descend.
			from = inner
			continue
		}
		name, rawArgs, hasArgs, ok := parseTagContent(body[start+2 : close])
		if !ok {
			// Not a well-formed tag; leave it literal and move on.
			from = start + 2
			continue
		}
		return tag{start: start, end: close + 2, name: name, rawArgs: rawArgs, hasArgs: hasArgs}, true
	}
}

func indexFrom(s, sub string, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

// parseTagContent splits "NAME" or "NAME(args)" with optional surrounding
// whitespace. The argument list must balance its parentheses and close at
// the very end of the content.
func parseTagContent(content string) (name, rawArgs string, hasArgs, ok bool) {
	s := strings.TrimSpace(content)
	i := 0
	for i < len(s) && isNameChar(s[i], i == 0) {
		i++
	}
	if i == 0 {
		return "", "", false, false
	}
	name = s[:i]
	rest := strings.TrimSpace(s[i:])
	if rest == "" {
		return name, "", false, true
	}
	if rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", "", false, false
	}
	depth := 0
	for j := 0; j < len(rest); j++ {
		switch rest[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", "", false, false
			}
			if depth == 0 && j != len(rest)-1 {
				// Closed before the end: trailing junk after the arg list.
				return "", "", false, false
			}
		}
	}
	if depth != 0 {
		return "", "", false, false
	}
	return name, rest[1 : len(rest)-1], true, true
}

func isNameChar(c byte, first bool) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' {
		return true
	}
	return !first && c >= '0' && c <= '9'
}

// splitArgs splits an argument list on top-level commas only; commas inside
// nested parentheses belong to the enclosing argument.
func splitArgs(rawArgs string) []string {
	var args []string
	depth := 0
	last := 0
	for i := 0; i < len(rawArgs); i++ {
		switch rawArgs[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				args = append(args, rawArgs[last:i])
				last = i + 1
			}
		}
	}
	return append(args, rawArgs[last:])
}
