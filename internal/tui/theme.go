package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The editor must remain readable on both light and dark terminal
// backgrounds. We use lipgloss.AdaptiveColor where possible and only apply
// "faint" styling on dark backgrounds (faint text on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Common semantic colors used across the editor.
var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorInputBg lipgloss.TerminalColor = ac("254", "234")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	// Inline validation warnings.
	colorWarnFg lipgloss.TerminalColor = ac("160", "203") // red

	colorHeaderBg lipgloss.TerminalColor = ac("252", "236")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleWarn() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWarnFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive editor.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors
// in a TUI. Here we only honor NO_COLOR and otherwise follow the terminal's
// capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// If TERM/COLORTERM indicate stronger support than the detector reports,
	// trust the env. This helps terminals where color probing under-reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// The theme is re-derived fresh on every launch (never persisted), default
// light.
//
// Priority:
// 1) BILLCRAFT_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic (common in terminals; format like "15;0" = fg;bg)
// 3) light
func applyThemePreference() {
	if v := strings.TrimSpace(os.Getenv("BILLCRAFT_TUI_THEME")); v != "" {
		switch strings.ToLower(v) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		case "auto":
			// fallthrough to heuristics/default
		default:
			// Unknown value: ignore.
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	lipgloss.SetHasDarkBackground(false)
}
