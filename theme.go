package folio

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values.
type Theme struct {
	UserMsg   int // "You:" prefix
	Assistant int // "Assistant:" prefix
	Error     int // Warning replies
	Muted     int // Status bar, placeholders
	CodeBg    int // Code block background
	Accent    int // Headings, links, spinner
}

// DefaultTheme returns the portfolio palette.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Assistant: 6,
		Error:     1,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
	}
}
