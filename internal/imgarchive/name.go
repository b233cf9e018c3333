package imgarchive

import "strings"

// maxNameLen is the longest name the 24-byte on-disk field can hold once the
// mandatory trailing NUL is reserved.
const maxNameLen = nameFieldSize - 1

// validateName checks a candidate entry name against the on-disk field's
// constraints: nonempty, ASCII only, at most 23 characters. It does not
// check for duplicates; that is the directory's job.
func validateName(name string) error {
	if name == "" {
		return newErr(KindInvalidName, "name is empty")
	}
	if len(name) > maxNameLen {
		return newErr(KindInvalidName, "name exceeds 23 characters")
	}
	for i := 0; i < len(name); i++ {
		if name[i] > 0x7F {
			return newErr(KindInvalidName, "name contains a non-ASCII byte")
		}
		if name[i] == 0 {
			return newErr(KindInvalidName, "name contains an embedded NUL")
		}
	}
	return nil
}

// foldName returns the case-insensitive key used by the directory's name
// index. Folding is ASCII-only (§4.2: "comparison for lookup is
// case-insensitive on the ASCII range only"), so it must not use
// strings.ToUpper: that folds the full Unicode case table and would mangle
// any non-ASCII byte a foreign tool wrote into a name field, since it
// decodes the string as UTF-8 and replaces invalid sequences wholesale.
func foldName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
