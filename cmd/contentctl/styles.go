// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/content"
)

// Palette for dark terminal backgrounds. lipgloss drops the colors when
// output is not a terminal, so tests see plain text.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED") // purple: headings
	ColorMuted     = lipgloss.Color("#6B7280") // gray: counts and hints
	ColorSuccess   = lipgloss.Color("#10B981") // green: enabled, done
	ColorError     = lipgloss.Color("#EF4444") // red: rejected content
	ColorWarning   = lipgloss.Color("#F59E0B") // amber: disabled, skipped
	ColorHighlight = lipgloss.Color("#3B82F6") // blue: namespaces
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	// CmdStyle marks namespaces and values.
	CmdStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
)

// stateLabel renders a namespace's enabled flag.
func stateLabel(enabled bool) string {
	if enabled {
		return SuccessStyle.Render("enabled")
	}
	return WarningStyle.Render("disabled")
}

// domainHeading renders "<domain> (<count>)".
func domainHeading(entry content.Entry) string {
	return TitleStyle.Render(entry.Domain.Name) + " " + SubtitleStyle.Render(fmt.Sprintf("(%d)", len(entry.Names)))
}
