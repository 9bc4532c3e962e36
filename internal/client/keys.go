package client

// Key names handled by the client.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
	KeySearch = "k"
)

// key applies a key press.
//
//   - modifier+k focuses the search field (Cmd on Apple platforms, Ctrl elsewhere)
//   - Enter in the focused field opens the first result
//   - 1-9 without modifiers open the result at that position
//   - Escape clears a non-empty focused field, or blurs an empty one
func (c *Client) key(ev Key) Effect {
	modifier := ev.Ctrl
	if c.options.Apple {
		modifier = ev.Meta
	}

	switch {
	case modifier && ev.Name == KeySearch:
		c.state.Focused = true
		c.deps.View.Focus()

		return Effect{PreventDefault: true}

	case ev.Name == KeyEnter:
		if !c.state.Focused {
			return Effect{}
		}
		if len(c.state.CurrentResults) > 0 {
			return c.navigate(c.state.CurrentResults[0].URL)
		}

		return Effect{PreventDefault: true}

	case isShortcutDigit(ev.Name) && !ev.Meta && !ev.Ctrl && !ev.Alt:
		idx := int(ev.Name[0] - '1')
		if idx < len(c.state.CurrentResults) {
			return c.navigate(c.state.CurrentResults[idx].URL)
		}

		return Effect{PreventDefault: true}

	case ev.Name == KeyEscape:
		switch {
		case c.state.Focused && c.state.Query != "":
			c.state.Query = ""
			c.deps.View.SetQuery("")
			c.render()
		case c.state.Focused:
			c.state.Focused = false
			c.deps.View.Blur()
		}
	}

	return Effect{}
}

func isShortcutDigit(name string) bool {
	return len(name) == 1 && name[0] >= '1' && name[0] <= '9'
}
