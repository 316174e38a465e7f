package theme

// Font families for the big countdown digits.
const (
	FontBlock = "Block"
	FontSlim  = "Slim"

	DefaultFont = FontBlock
)

// Fonts lists the available digit families.
func Fonts() []string {
	return []string{FontBlock, FontSlim}
}

// IsFont reports whether name is a known family.
func IsFont(name string) bool {
	for _, f := range Fonts() {
		if f == name {
			return true
		}
	}
	return false
}

// LookupFont returns name when it is known, the default family otherwise.
func LookupFont(name string) string {
	if IsFont(name) {
		return name
	}
	return DefaultFont
}
