package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// Theme holds the styles used across views. Colors are ANSI 256 codes.
type Theme struct {
	Title     lipgloss.Style
	Brand     lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Faint     lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Stat      lipgloss.Style
	Box       lipgloss.Style

	statusColors map[sdk.BookingStatus]lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal scheme.
var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
	Brand:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
	NavItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	NavActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")).Padding(0, 1),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14),
	Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Width(14),
	Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	Stat:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
	Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2),

	statusColors: map[sdk.BookingStatus]lipgloss.Color{
		sdk.BookingPending:   lipgloss.Color("220"),
		sdk.BookingApproved:  lipgloss.Color("114"),
		sdk.BookingRejected:  lipgloss.Color("196"),
		sdk.BookingCancelled: lipgloss.Color("245"),
		sdk.BookingCompleted: lipgloss.Color("141"),
	},
}

// Status renders a booking status in its color.
func (theme Theme) Status(status sdk.BookingStatus) string {
	color, ok := theme.statusColors[status]
	if !ok {
		return string(status)
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(status))
}
