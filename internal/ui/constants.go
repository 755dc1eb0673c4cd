// Package ui provides constants for layout calculations.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BannerHeight is the line reserved for the placeholder-data banner
	BannerHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for the list width (1/3 of total width)
	SidebarWidthRatio = 3

	// ChatHeightRatio is the denominator for the chat panel height under the detail view
	ChatHeightRatio = 2

	// ChatInputHeight is the number of lines for the compose textarea
	ChatInputHeight = 2

	// ChatInputBorderHeight is the border size around the compose textarea
	ChatInputBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the compose area
	InputPaddingWidth = 2

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// DefaultWrapWidth is used when the viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight keep layout values positive
	MinTerminalWidth  = 60
	MinTerminalHeight = 16
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 64

	// ModalWidthWide is used by the form and inspect modals
	ModalWidthWide = 96

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 56

	// ModalMaxVisibleLines caps scrollable modal content
	ModalMaxVisibleLines = 20
)
