package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapmark/pkg/core"
)

// Styles holds the lipgloss styles used by the commands.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	FilePath lipgloss.Style
	Code     lipgloss.Style
}

// Palette
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	colorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"}
)

// NewStyles builds the styles for a lipgloss renderer.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:  lr.NewStyle().Bold(true).Foreground(colorAccent).Underline(true),
		Header2:  lr.NewStyle().Bold(true).Foreground(colorAccent),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(colorMuted),
		Success:  lr.NewStyle().Foreground(colorSuccess),
		Error:    lr.NewStyle().Foreground(colorError).Bold(true),
		Warning:  lr.NewStyle().Foreground(colorWarning),
		Info:     lr.NewStyle().Foreground(colorInfo),
		FilePath: lr.NewStyle().Bold(true).Underline(true),
		Code:     lr.NewStyle().Foreground(colorAccent),
	}
}

// Severity returns the style for a severity.
func (s *Styles) Severity(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return s.Error
	case core.SeverityWarning:
		return s.Warning
	case core.SeverityInfo:
		return s.Info
	default:
		return s.Muted
	}
}
