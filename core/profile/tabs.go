package profile

// The profile page's tab strip is a single-selection state machine:
// states are the tab identifiers, transitions are activations, and the
// initial state is the first tab. Rendering (active markers, panel
// visibility) is derived purely from the selection value held here;
// templates and the client script never own the state.

// PanelSuffix joins a tab identifier to its content panel identifier.
// Server markup and the client script both rely on this convention; it
// is the wire format between them and must be preserved exactly.
const PanelSuffix = "-content"

// TabInfo is the fixed identifier of the leading profile tab.
const TabInfo = "info"

// PanelID returns the panel identifier bound to a tab identifier.
func PanelID(tabID string) string { return tabID + PanelSuffix }

type (
	// Tab is a selector element bound one-to-one with a content panel
	// by shared identifier.
	Tab struct {
		ID    string
		Label string
	}

	// Panel is a content block shown or hidden in response to tab
	// selection. Its ID is PanelID(tab.ID) of the owning tab.
	Panel struct {
		ID string
	}

	// TabSet holds the tabs and panels present on a page and the single
	// active selection.
	TabSet struct {
		tabs   []Tab
		panels map[string]Panel
		active string
	}
)

// NewTabSet builds a TabSet from the tabs and panels present at render
// time. The first tab starts active; an empty tab set has no selection.
func NewTabSet(tabs []Tab, panels []Panel) *TabSet {
	ts := &TabSet{
		tabs:   tabs,
		panels: make(map[string]Panel, len(panels)),
	}
	for _, p := range panels {
		ts.panels[p.ID] = p
	}
	if len(tabs) > 0 {
		ts.active = tabs[0].ID
	}
	return ts
}

func (ts *TabSet) Tabs() []Tab { return ts.tabs }

// Activate moves the selection to the tab with the given identifier and
// reports whether such a tab exists. Activating an unknown identifier
// leaves the selection unchanged; activating a tab whose panel is
// missing still moves the selection (no panel will be visible).
func (ts *TabSet) Activate(id string) bool {
	for _, tab := range ts.tabs {
		if tab.ID == id {
			ts.active = id
			return true
		}
	}
	return false
}

// ActiveTab returns the currently selected tab.
func (ts *TabSet) ActiveTab() (Tab, bool) {
	for _, tab := range ts.tabs {
		if tab.ID == ts.active {
			return tab, true
		}
	}
	return Tab{}, false
}

// IsActive reports whether the tab with the given identifier is the
// current selection. At most one identifier satisfies this.
func (ts *TabSet) IsActive(tabID string) bool {
	return ts.active != "" && ts.active == tabID
}

// VisiblePanel returns the panel bound to the active tab. A missing
// panel is not an error: no panel is visible then.
func (ts *TabSet) VisiblePanel() (Panel, bool) {
	p, ok := ts.panels[PanelID(ts.active)]
	return p, ok
}

// IsVisible reports whether the panel with the given identifier is the
// one currently shown. At most one identifier satisfies this.
func (ts *TabSet) IsVisible(panelID string) bool {
	if _, ok := ts.panels[panelID]; !ok {
		return false
	}
	return panelID == PanelID(ts.active)
}

// MissingPanels returns identifiers of tabs that have no matching
// panel. Activating those tabs shows nothing; surfacing them keeps the
// markup/controller mismatch diagnosable instead of silent.
func (ts *TabSet) MissingPanels() []string {
	var missing []string
	for _, tab := range ts.tabs {
		if _, ok := ts.panels[PanelID(tab.ID)]; !ok {
			missing = append(missing, tab.ID)
		}
	}
	return missing
}

// Menu models the mobile navigation drawer's presentation flag.
// Open and Close are idempotent.
type Menu struct {
	open bool
}

func (m *Menu) Open()        { m.open = true }
func (m *Menu) Close()       { m.open = false }
func (m *Menu) IsOpen() bool { return m.open }
