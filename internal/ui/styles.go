package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colour palette. Values come from the active theme; see regenerateStyles.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorMuted       color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorMine        color.Color // messages the current user sent
	ColorTheirs      color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
	ColorStar        color.Color
)

// Header and footer
var (
	HeaderStyle     lipgloss.Style
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panels and lists
var (
	PanelStyle           lipgloss.Style
	PanelFocusedStyle    lipgloss.Style
	PanelTitleStyle      lipgloss.Style
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style
	SidebarMutedStyle    lipgloss.Style
	StarStyle            lipgloss.Style
	LabelStyle           lipgloss.Style
	ValueStyle           lipgloss.Style
	SectionTitleStyle    lipgloss.Style
)

// Chat
var (
	ChatMineStyle         lipgloss.Style
	ChatTheirsStyle       lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatTimestampStyle    lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
)

// Modals and status lines
var (
	ModalStyle         lipgloss.Style
	ModalTitleStyle    lipgloss.Style
	ModalHelpStyle     lipgloss.Style
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	BannerStyle        lipgloss.Style
)
