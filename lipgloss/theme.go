// Package lipgloss renders diffs, highlighted source and validation issues
// as styled terminal text using the Lipgloss styling library.
package lipgloss

import "github.com/AmKilopa/KlpGIT"

// Compile-time interface verification.
var _ klpgit.Theme = (*Theme)(nil)

// Theme implements klpgit.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  klpgit.Styles
	palette klpgit.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() klpgit.Styles {
	return t.styles
}

// Palette returns the token color palette for this theme.
func (t *Theme) Palette() klpgit.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme named "light" or "dark", and false for other
// names.
func ThemeByName(name string) (*Theme, bool) {
	switch name {
	case "dark", "":
		return DarkTheme(), true
	case "light":
		return LightTheme(), true
	default:
		return nil, false
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
// Row backgrounds are very dark so token colors stay readable on them.
func DarkTheme() *Theme {
	return &Theme{
		styles: klpgit.Styles{
			Added:      klpgit.ColorPair{Foreground: "#a6e3a1", Background: "#0f2a16"},
			Removed:    klpgit.ColorPair{Foreground: "#f38ba8", Background: "#2d0f14"},
			Context:    klpgit.ColorPair{Foreground: "#bac2de"},
			Hunk:       klpgit.ColorPair{Foreground: "#89b4fa"},
			Meta:       klpgit.ColorPair{Foreground: "#f9e2af", Background: "#313244"},
			LineNumber: klpgit.ColorPair{Foreground: "#6c7086"},
			Header:     klpgit.ColorPair{Foreground: "#1e1e2e", Background: "#89b4fa"},
			Warning:    klpgit.ColorPair{Foreground: "#fab387"},
			Info:       klpgit.ColorPair{Foreground: "#89dceb"},
		},
		// Catppuccin Mocha
		palette: klpgit.Palette{
			Foreground: "#cdd6f4",
			Keyword:    "#cba6f7",
			String:     "#a6e3a1",
			Comment:    "#6c7086",
			Number:     "#fab387",
			Boolean:    "#f38ba8",
			Function:   "#89b4fa",
			Type:       "#f9e2af",
			Tag:        "#eba0ac",
			Attribute:  "#94e2d5",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: klpgit.Styles{
			Added:      klpgit.ColorPair{Foreground: "#40a02b", Background: "#d4f4d4"},
			Removed:    klpgit.ColorPair{Foreground: "#d20f39", Background: "#f4d4d4"},
			Context:    klpgit.ColorPair{Foreground: "#5c5f77"},
			Hunk:       klpgit.ColorPair{Foreground: "#1e66f5"},
			Meta:       klpgit.ColorPair{Foreground: "#df8e1d", Background: "#e6e9ef"},
			LineNumber: klpgit.ColorPair{Foreground: "#9ca0b0"},
			Header:     klpgit.ColorPair{Foreground: "#eff1f5", Background: "#1e66f5"},
			Warning:    klpgit.ColorPair{Foreground: "#fe640b"},
			Info:       klpgit.ColorPair{Foreground: "#04a5e5"},
		},
		// Catppuccin Latte
		palette: klpgit.Palette{
			Foreground: "#4c4f69",
			Keyword:    "#8839ef",
			String:     "#40a02b",
			Comment:    "#9ca0b0",
			Number:     "#fe640b",
			Boolean:    "#d20f39",
			Function:   "#1e66f5",
			Type:       "#df8e1d",
			Tag:        "#e64553",
			Attribute:  "#179299",
		},
	}
}
