package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/studydesk/internal/format"
)

const headerTitle = " studydesk"

// Header represents the top header bar
type Header struct {
	width int
	page  string
	user  string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetPage sets the name of the current page
func (h *Header) SetPage(name string) {
	h.page = name
}

// SetUser sets the signed-in user shown on the right
func (h *Header) SetUser(user string) {
	h.user = user
}

// View renders the header
func (h *Header) View() string {
	left := headerTitle
	if h.page != "" {
		left += " · " + h.page
	}
	var right string
	if h.user != "" {
		right = h.user + " "
	}

	padding := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if padding < 1 {
		padding = 1
	}

	return h.renderGradient(left+strings.Repeat(" ", padding)+right, len([]rune(left)))
}

// renderGradient renders content on a background fading from the theme's
// primary colour to its background. Runes before mutedFrom keep the normal
// text colour; the user name on the right is muted.
func (h *Header) renderGradient(content string, mutedFrom int) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB, _ := format.ParseHex(theme.Primary)
	endR, endG, endB, _ := format.ParseHex(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	width := len(runes)
	titleLen := len([]rune(headerTitle))
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleLen)

		if i >= mutedFrom {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
