package render

import (
	"strings"

	"github.com/matzehuels/magnitude/pkg/errors"
)

// Substitute replaces every {{ name }} placeholder in text with vars[name].
//
// A placeholder that is alone on its line is a block placeholder: each line
// of the value is indented to the placeholder's column. Substituted values
// are never rescanned. A placeholder without a value, an unclosed "{{" or an
// empty "{{ }}" fails with [errors.TemplateError] naming fragment.
func Substitute(fragment, text string, vars map[string]string) (string, error) {
	if text == "" {
		return "", nil
	}

	var out strings.Builder
	out.Grow(len(text))

	for rest := text; rest != ""; {
		line, tail, hasNL := strings.Cut(rest, "\n")
		rest = tail

		if indent, key, ok := blockPlaceholder(line); ok {
			value, found := vars[key]
			if !found {
				return "", missing(fragment, key)
			}
			writeIndented(&out, value, indent)
		} else if err := substituteLine(&out, fragment, line, vars); err != nil {
			return "", err
		}

		if hasNL {
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

// Placeholders returns the distinct placeholder names in text, in order of
// first appearance.
func Placeholders(text string) []string {
	var names []string
	seen := map[string]bool{}
	rest := text
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			return names
		}
		rest = rest[start+2:]
		end := strings.Index(rest, "}}")
		if end == -1 {
			return names
		}
		if key := strings.TrimSpace(rest[:end]); key != "" && !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
		rest = rest[end+2:]
	}
}

func blockPlaceholder(line string) (indent, key string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	body := strings.TrimRight(trimmed, " \t\r")
	if !strings.HasPrefix(body, "{{") || !strings.HasSuffix(body, "}}") || len(body) < 4 {
		return "", "", false
	}
	inner := body[2 : len(body)-2]
	if strings.Contains(inner, "{{") || strings.Contains(inner, "}}") {
		return "", "", false
	}
	key = strings.TrimSpace(inner)
	if key == "" {
		return "", "", false
	}
	return line[:len(line)-len(trimmed)], key, true
}

func writeIndented(out *strings.Builder, value, indent string) {
	for i, l := range strings.Split(value, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		if l != "" {
			out.WriteString(indent)
			out.WriteString(l)
		}
	}
}

func substituteLine(out *strings.Builder, fragment, line string, vars map[string]string) error {
	rest := line
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return &errors.TemplateError{Template: fragment, Reason: "unclosed placeholder"}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return &errors.TemplateError{Template: fragment, Reason: "empty placeholder"}
		}

		value, ok := vars[key]
		if !ok {
			return missing(fragment, key)
		}
		out.WriteString(value)
		rest = rest[end+2:]
	}
}

func missing(fragment, key string) error {
	return &errors.TemplateError{Template: fragment, Placeholder: key, Reason: "has no value"}
}
