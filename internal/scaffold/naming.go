package scaffold

import (
	"regexp"
	"strings"
	"unicode"
)

var pascalRE = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// IsPascalCase reports whether a component name is acceptable.
func IsPascalCase(name string) bool {
	return pascalRE.MatchString(name)
}

// ToKebab converts PascalCase to kebab-case: DatePicker -> date-picker.
func ToKebab(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ToCamel converts PascalCase to camelCase: DatePicker -> datePicker.
func ToCamel(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
