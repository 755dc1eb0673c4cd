package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/chat"
	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/keys"
	"github.com/zhubert/studydesk/internal/models"
)

// chatInputTotalHeight is the compose area including its border
const chatInputTotalHeight = ChatInputHeight + ChatInputBorderHeight

// Chat is the message panel shown under the application detail. The chat
// view-model owns the thread; this only renders it and holds the textarea.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model

	width   int
	height  int
	focused bool

	snap    chat.Snapshot
	mine    func(models.Message) bool
	now     func() time.Time
	version uint64
	title   string
}

// NewChat creates an empty chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Write a message..."
	ti.CharLimit = 2000
	ti.SetHeight(ChatInputHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Chat{
		viewport: vp,
		input:    ti,
		mine:     func(models.Message) bool { return false },
		now:      time.Now,
	}
}

// SetSize sets the panel dimensions, compose area included
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	panelHeight := height - chatInputTotalHeight
	vpHeight := max(ctx.InnerHeight(panelHeight)-TitleHeight, 1)

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(vpHeight)
	c.input.SetWidth(max(ctx.InnerWidth(width)-InputPaddingWidth, 1))
	c.render()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetTitle sets the panel title, usually the university name
func (c *Chat) SetTitle(title string) {
	c.title = title
}

// SetMine sets how the panel tells the user's own messages apart
func (c *Chat) SetMine(mine func(models.Message) bool) {
	c.mine = mine
}

// SetClock replaces time.Now for relative timestamps
func (c *Chat) SetClock(now func() time.Time) {
	c.now = now
}

// SetSnapshot renders a new state of the thread. When the thread's version
// changed the view jumps to the newest message.
func (c *Chat) SetSnapshot(s chat.Snapshot) {
	changed := s.Version != c.version
	c.snap = s
	c.version = s.Version
	c.render()
	if changed {
		c.viewport.GotoBottom()
	}
}

// HasThread reports whether an application's thread is showing
func (c *Chat) HasThread() bool {
	return c.snap.ApplicationID != ""
}

// Input returns the compose text
func (c *Chat) Input() string {
	return c.input.Value()
}

// SetInput replaces the compose text
func (c *Chat) SetInput(s string) {
	c.input.SetValue(s)
}

// ClearInput empties the compose area
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// AtBottom reports whether the newest message is in view
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

func (c *Chat) render() {
	width := max(c.viewport.Width(), 1)
	var sb strings.Builder

	switch {
	case c.snap.ApplicationID == "":
		sb.WriteString(SidebarMutedStyle.Render("Select an application to see its conversation."))
	case c.snap.Loading && len(c.snap.Messages) == 0:
		sb.WriteString(StatusLoadingStyle.Render("Loading conversation..."))
	case len(c.snap.Messages) == 0:
		sb.WriteString(SidebarMutedStyle.Render("No messages yet. Start the conversation below."))
	default:
		if c.snap.Placeholder {
			sb.WriteString(BannerStyle.Render("Conversation unavailable, showing sample messages"))
			sb.WriteString("\n\n")
		}
		now := c.now()
		for i, m := range c.snap.Messages {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(c.renderMessage(m, now, width))
		}
	}
	c.viewport.SetContent(sb.String())
}

func (c *Chat) renderMessage(m models.Message, now time.Time, width int) string {
	name := m.Sender.Name
	style := ChatTheirsStyle
	if c.mine(m) {
		name = "You"
		style = ChatMineStyle
	}
	if name == "" {
		name = "Unknown"
	}
	head := style.Render(name) + " " + ChatTimestampStyle.Render(format.RelativeTimestamp(m.Timestamp, now))
	body := ChatMessageStyle.Width(width).Render(m.Text)
	return head + "\n" + body + "\n"
}

// Update passes keys to the textarea while focused; scroll keys and mouse
// events go to the viewport.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		switch keyMsg.String() {
		case keys.PgUp, keys.PgDown, keys.Home, keys.End:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		if !c.focused {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	title := c.title
	if title == "" {
		title = "Conversation"
	}
	if c.snap.Sending {
		title += " · sending..."
	}
	header := PanelTitleStyle.Render(title)

	if !c.HasThread() {
		return panelStyle.Width(c.width).Height(c.height).Render(header + "\n" + c.viewport.View())
	}

	panelHeight := c.height - chatInputTotalHeight
	history := panelStyle.Width(c.width).Height(panelHeight).Render(header + "\n" + c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, history, inputArea)
}
