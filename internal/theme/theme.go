package theme

import (
	"github.com/charmbracelet/lipgloss"

	"navtrail/internal/render"
)

// Styles describes reusable Lip Gloss styles shared across the panel.
type Styles struct {
	Header     *lipgloss.Style
	Stack      *lipgloss.Style
	Active     *lipgloss.Style
	Root       *lipgloss.Style
	Symbol     *lipgloss.Style
	Current    *lipgloss.Style
	Connector  *lipgloss.Style
	Truncation *lipgloss.Style
	Path       *lipgloss.Style
	Match      *lipgloss.Style
	Filter     *lipgloss.Style
	Error      *lipgloss.Style
	Footer     *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Stack: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Active: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Root: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Symbol: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Current: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Connector: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Truncation: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Path: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Match: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the panel.
func Default() *Styles {
	return &defaultStyles
}

// ForGroup resolves a highlight group to its style; nil means unstyled.
func (s *Styles) ForGroup(group render.Group) *lipgloss.Style {
	switch group {
	case render.GroupHeader:
		return s.Header
	case render.GroupStack:
		return s.Stack
	case render.GroupActive:
		return s.Active
	case render.GroupRoot:
		return s.Root
	case render.GroupSymbol:
		return s.Symbol
	case render.GroupCurrent:
		return s.Current
	case render.GroupConnector:
		return s.Connector
	case render.GroupTruncation:
		return s.Truncation
	case render.GroupPath:
		return s.Path
	default:
		return nil
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
