package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

const maxNameLength = 214

var (
	nameRE         = regexp.MustCompile(`^(?:@[a-z0-9-*~][a-z0-9-*._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)
	nameSpecialsRE = regexp.MustCompile(`[~'!()*]`)
	reservedNames  = []string{"node_modules", "favicon.ico"}
)

// ValidateName checks that name can be published as a new npm package:
//   - It is not empty and at most 214 characters long.
//   - It has no surrounding spaces and no uppercase letters.
//   - Its unscoped part does not begin with a dot or an underscore.
//   - It contains none of ~'!()* and is otherwise URL safe.
//   - It is not a reserved name.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q", ErrNameSpaces, name)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}

	base := DirName(name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") {
		return fmt.Errorf("%w: %q", ErrNameLeadingChar, name)
	}
	for _, reserved := range reservedNames {
		if strings.EqualFold(base, reserved) {
			return fmt.Errorf("%w: %q", ErrNameReserved, name)
		}
	}
	if strings.ToLower(name) != name {
		return fmt.Errorf("%w: %q", ErrNameUppercase, name)
	}
	if nameSpecialsRE.MatchString(base) {
		return fmt.Errorf("%w: %q", ErrNameSpecialChars, name)
	}
	if !nameRE.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrNameNotURLSafe, name)
	}
	return nil
}
