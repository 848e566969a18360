package profile

import (
	"fmt"
	"strconv"
	"time"

	"github.com/iljicevs/eduportal/core/user"
)

// dateLayout is how date-valued profile fields render on the page.
const dateLayout = "02.01.2006"

type (
	// FieldValue is one rendered profile field.
	FieldValue struct {
		Key         string
		DisplayName string
		Value       string
		IsBoolean   bool
	}

	// SectionValue is one rendered profile section: the content behind
	// a tab panel.
	SectionValue struct {
		Key         string
		DisplayName string
		Value       string
	}

	// View is everything the profile template needs: the account, the
	// resolved field and section values in render order, and the tab
	// set derived from the visible sections.
	View struct {
		User           user.User
		Fields         []FieldValue
		Sections       []SectionValue
		Tabs           *TabSet
		ShowStatistics bool
	}

	// Composer assembles profile page views. Visibility filtering
	// happens here: the template receives only values it should show
	// and performs no access logic of its own.
	Composer struct{}
)

func NewComposer() *Composer { return &Composer{} }

// Compose builds the profile view for an account. cfg is the role's
// presentation catalog with administrator-curated visibility; extra
// overlays section content owned by other services (course lists,
// grade statistics) keyed by section key. Fields whose value resolves
// to absent are omitted, not errors.
func (c *Composer) Compose(usr user.User, prof *Profile, cfg DisplayConfig, extra map[string]string) *View {
	view := &View{
		User:           usr,
		ShowStatistics: cfg.ShowStatistics(),
	}

	for _, fc := range cfg.Fields {
		if !fc.Visible {
			continue
		}
		raw, ok := prof.FieldValue(fc.Key)
		if !ok || raw == nil {
			continue
		}
		view.Fields = append(view.Fields, FieldValue{
			Key:         fc.Key,
			DisplayName: fc.DisplayName,
			Value:       formatValue(raw, usr.PreferredLanguage),
			IsBoolean:   fc.IsBoolean,
		})
	}

	for _, sc := range cfg.Sections {
		if !sc.Visible {
			continue
		}
		value, _ := prof.SectionValue(sc.Key)
		if override, ok := extra[sc.Key]; ok {
			value = override
		}
		view.Sections = append(view.Sections, SectionValue{
			Key:         sc.Key,
			DisplayName: sc.DisplayName,
			Value:       value,
		})
	}

	view.Tabs = c.composeTabs(view.Sections)
	return view
}

// composeTabs derives the tab strip from the visible sections: the
// fixed leading info tab plus one tab and panel per section.
func (c *Composer) composeTabs(sections []SectionValue) *TabSet {
	tabs := make([]Tab, 0, len(sections)+1)
	panels := make([]Panel, 0, len(sections)+1)
	tabs = append(tabs, Tab{ID: TabInfo, Label: "Information"})
	panels = append(panels, Panel{ID: PanelID(TabInfo)})
	for _, s := range sections {
		tabs = append(tabs, Tab{ID: s.Key, Label: s.DisplayName})
		panels = append(panels, Panel{ID: PanelID(s.Key)})
	}
	return NewTabSet(tabs, panels)
}

// formatValue renders a resolved field value as display text. Boolean
// values render as the localized yes/no words, dates in the portal's
// date layout.
func formatValue(raw interface{}, lang string) string {
	switch v := raw.(type) {
	case bool:
		return YesNo(lang, v)
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.Format(dateLayout)
	}
	return fmt.Sprintf("%v", raw)
}
