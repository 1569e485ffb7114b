//go:build unit

package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{name: "Simple name", input: "foo"},
		{name: "Scoped name", input: "@scope/foo-bar"},
		{name: "Name with dots", input: "foo.js"},
		{name: "Empty name", input: "", expected: ErrNameEmpty},
		{name: "Leading space", input: " foo", expected: ErrNameSpaces},
		{name: "Too long", input: strings.Repeat("a", 215), expected: ErrNameTooLong},
		{name: "Leading dot", input: ".hidden", expected: ErrNameLeadingChar},
		{name: "Scoped leading underscore", input: "@scope/_private", expected: ErrNameLeadingChar},
		{name: "Reserved", input: "node_modules", expected: ErrNameReserved},
		{name: "Uppercase", input: "FooBar", expected: ErrNameUppercase},
		{name: "Special characters", input: "foo!", expected: ErrNameSpecialChars},
		{name: "Tilde", input: "foo~", expected: ErrNameSpecialChars},
		{name: "Not URL safe", input: "foo/bar", expected: ErrNameNotURLSafe},
		{name: "Inner space", input: "foo bar", expected: ErrNameNotURLSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
