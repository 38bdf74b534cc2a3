package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything routes through lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted       lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg  lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg  lipgloss.TerminalColor = ac("235", "255")
	colorAccent      lipgloss.TerminalColor = ac("27", "62") // blue
	colorAccentFg    lipgloss.TerminalColor = ac("255", "235")
	colorHeaderFg    lipgloss.TerminalColor = ac("235", "252")
	colorStatusOpen  lipgloss.TerminalColor = ac("240", "246")
	colorStatusDoing lipgloss.TerminalColor = ac("172", "214") // amber
	colorStatusDone  lipgloss.TerminalColor = ac("28", "71")   // green
	colorError       lipgloss.TerminalColor = ac("124", "203") // red
	colorSurfaceBg   lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg   lipgloss.TerminalColor = ac("235", "252")
	colorControlBg   lipgloss.TerminalColor = ac("252", "238")
)

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleMeta() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleGroupHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorHeaderFg).Bold(true)
}

func styleStatusOpen() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorStatusOpen)
}

func styleStatusDoing() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorStatusDoing)
}

func styleStatusDone() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorStatusDone)
}

func styleBanner() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorError).Padding(0, 1).Bold(true)
}

func styleMinibuffer() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts the
// terminal's reported capabilities, bumping the profile when TERM/COLORTERM
// indicate more than the detector found.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
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
