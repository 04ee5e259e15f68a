package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/magnitude/pkg/errors"
)

func TestSubstitute(t *testing.T) {
	vars := map[string]string{"a": "1", "b": "two", "block": "<x>\n  <y/>\n\n</x>", "tricky": "{{ a }}"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no placeholders", "plain text\n", "plain text\n"},
		{"inline", "a={{a}} b={{ b }}", "a=1 b=two"},
		{"adjacent", "{{a}}{{b}}", "1two"},
		{"block indent", "<main>\n    {{ block }}\n</main>\n", "<main>\n    <x>\n      <y/>\n\n    </x>\n</main>\n"},
		{"two on one line", "  {{ a }} {{ b }}", "  1 two"},
		{"value not rescanned", "{{ tricky }}!", "{{ a }}!"},
		{"single braces", "a { color: red; }", "a { color: red; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute("test", tt.in, vars)
			if err != nil {
				t.Fatalf("Substitute: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubstituteErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMsg string
	}{
		{"missing inline", "x {{ nope }}", `placeholder "nope" has no value`},
		{"missing block", "  {{ nope }}\n", `placeholder "nope" has no value`},
		{"unclosed", "x {{ a", "unclosed placeholder"},
		{"unclosed across lines", "{{ a\n}}", "unclosed placeholder"},
		{"empty", "x {{  }} y", "empty placeholder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Substitute("entry", tt.in, map[string]string{"a": "1"})
			if !errors.Is(err, errors.ErrCodeTemplate) {
				t.Fatalf("err = %v, want TEMPLATE", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) || !strings.Contains(err.Error(), "entry") {
				t.Errorf("error %q, want fragment name and %q", err, tt.wantMsg)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{{ a }} {{b}} {{ a }} {{ }} {{ c")
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("Placeholders = %v", got)
	}
}
