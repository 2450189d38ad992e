package ui

// ColorPrimary wraps s with the theme's primary color.
func ColorPrimary(s string) string {
	t := GetCurrentTheme()
	if t.Primary == "" {
		return s
	}
	return t.Primary + s + t.Reset
}

// ColorSuccess wraps s with the theme's success color.
func ColorSuccess(s string) string {
	t := GetCurrentTheme()
	if t.Success == "" {
		return s
	}
	return t.Success + s + t.Reset
}

// ColorWarning wraps s with the theme's warning color.
func ColorWarning(s string) string {
	t := GetCurrentTheme()
	if t.Warning == "" {
		return s
	}
	return t.Warning + s + t.Reset
}

// ColorError wraps s with the theme's error color.
func ColorError(s string) string {
	t := GetCurrentTheme()
	if t.Error == "" {
		return s
	}
	return t.Error + s + t.Reset
}

// ColorSecondary wraps s with the theme's secondary color.
func ColorSecondary(s string) string {
	t := GetCurrentTheme()
	if t.Secondary == "" {
		return s
	}
	return t.Secondary + s + t.Reset
}

// Bold wraps s with the theme's bold escape code.
func Bold(s string) string {
	t := GetCurrentTheme()
	if t.Bold == "" {
		return s
	}
	return t.Bold + s + t.Reset
}

// Underline wraps s with the theme's underline escape code.
func Underline(s string) string {
	t := GetCurrentTheme()
	if t.Underline == "" {
		return s
	}
	return t.Underline + s + t.Reset
}
