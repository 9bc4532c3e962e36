package client

// MaxShortcuts is the number of leading rows that get a digit shortcut.
const MaxShortcuts = 9

// Row is one rendered entry of the list.
type Row struct {
	// Shortcut is the 1-based digit that opens this row, or 0 for none.
	Shortcut int
	Name     string
	URL      string
}

// Frame is a complete description of what the view shows. Every render
// produces a new Frame; views rebuild from it rather than patching.
type Frame struct {
	Query string
	Rows  []Row
	// ShowList and Empty are mutually exclusive: the list is hidden and the
	// empty-state shown when no record matches.
	ShowList bool
	Empty    bool
	// ShowClear and ShowHint are mutually exclusive: the clear control is
	// visible iff the query is non-empty, the shortcut hint iff it is empty.
	ShowClear bool
	ShowHint  bool
}

// BuildFrame lays out already filtered rows for query.
func BuildFrame(query string, results []Row) Frame {
	f := Frame{
		Query:     query,
		ShowClear: query != "",
		ShowHint:  query == "",
	}
	if len(results) == 0 {
		f.Empty = true

		return f
	}
	f.ShowList = true
	f.Rows = results

	return f
}

// render recomputes CurrentResults from Subdomains and the current query and
// hands a fresh Frame to the view.
func (c *Client) render() {
	c.state.CurrentResults = c.state.Subdomains.Filter(c.state.Query)

	rows := make([]Row, 0, len(c.state.CurrentResults))
	for i, r := range c.state.CurrentResults {
		row := Row{Name: r.Name, URL: r.URL}
		if i < MaxShortcuts {
			row.Shortcut = i + 1
		}
		rows = append(rows, row)
	}

	if c.state.HasCachedData {
		c.setLoading(false)
	}

	c.state.Renders++
	c.deps.View.Render(BuildFrame(c.state.Query, rows))
}

func (c *Client) setLoading(visible bool) {
	if c.state.Loading == visible {
		return
	}
	c.state.Loading = visible
	c.deps.View.SetLoading(visible)
}
