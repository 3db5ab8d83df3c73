package agent

import (
	"fmt"
	"unicode/utf8"
)

// CheckPythonSource runs a structural sanity check over Python source: the
// bytes must be valid UTF-8, string literals must terminate, and brackets
// must balance outside strings and comments. It is not a full parse — it
// catches truncated, mangled, or non-Python files, not semantic errors.
func CheckPythonSource(src []byte) error {
	if !utf8.Valid(src) {
		return fmt.Errorf("file is not valid UTF-8")
	}

	var stack []byte
	var stackLines []int
	line := 1
	i, n := 0, len(src)

	for i < n {
		switch c := src[i]; c {
		case '\n':
			line++
			i++
		case '#':
			for i < n && src[i] != '\n' {
				i++
			}
		case '\'', '"':
			next, err := scanPyString(src, i, &line)
			if err != nil {
				return err
			}
			i = next
		case '(', '[', '{':
			stack = append(stack, c)
			stackLines = append(stackLines, line)
			i++
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != openerFor(c) {
				return fmt.Errorf("unmatched '%c' at line %d", c, line)
			}
			stack = stack[:len(stack)-1]
			stackLines = stackLines[:len(stackLines)-1]
			i++
		default:
			i++
		}
	}

	if len(stack) > 0 {
		return fmt.Errorf("unclosed '%c' opened at line %d", stack[len(stack)-1], stackLines[len(stackLines)-1])
	}
	return nil
}

func openerFor(closing byte) byte {
	switch closing {
	case ')':
		return '('
	case ']':
		return '['
	default:
		return '{'
	}
}

// scanPyString consumes the string literal starting at src[i] (a quote) and
// returns the index just past it. Triple-quoted strings may span lines;
// single-quoted strings must terminate before the next newline unless the
// newline is escaped.
func scanPyString(src []byte, i int, line *int) (int, error) {
	q := src[i]
	n := len(src)
	start := *line

	if i+2 < n && src[i+1] == q && src[i+2] == q {
		j := i + 3
		for j < n {
			switch {
			case src[j] == '\\':
				if j+1 < n && src[j+1] == '\n' {
					*line++
				}
				j += 2
			case src[j] == '\n':
				*line++
				j++
			case src[j] == q && j+2 < n && src[j+1] == q && src[j+2] == q:
				return j + 3, nil
			default:
				j++
			}
		}
		return 0, fmt.Errorf("unterminated triple-quoted string starting at line %d", start)
	}

	j := i + 1
	for j < n {
		switch src[j] {
		case '\\':
			if j+1 < n && src[j+1] == '\n' {
				*line++
			}
			j += 2
		case '\n':
			return 0, fmt.Errorf("unterminated string literal at line %d", start)
		case q:
			return j + 1, nil
		default:
			j++
		}
	}
	return 0, fmt.Errorf("unterminated string literal at line %d", start)
}
