package session

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// DefaultAreas is the body-part catalog offered when none is configured.
var DefaultAreas = []string{"가슴", "등", "하체", "어깨", "이두", "삼두", "복근", "유산소"}

// callbackPrefix prefixes toggle callback data, e.g. "TOGGLE_gaseum".
const callbackPrefix = "TOGGLE_"

// Area is a selectable body-part tag.
type Area struct {
	ID    string
	Label string
}

// Catalog is the ordered set of selectable areas.
type Catalog struct {
	areas []Area
	byID  map[string]Area
}

// NewCatalog builds a catalog from labels. IDs are slugs of the labels,
// suffixed when two labels slug to the same value. Blank and repeated labels
// are skipped.
func NewCatalog(labels []string) *Catalog {
	c := &Catalog{byID: make(map[string]Area)}
	seenLabels := make(map[string]bool)
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" || seenLabels[label] {
			continue
		}
		seenLabels[label] = true

		base := slug.Make(label)
		if base == "" {
			base = "area"
		}
		id := base
		for n := 2; c.byID[id].ID != ""; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}

		area := Area{ID: id, Label: label}
		c.areas = append(c.areas, area)
		c.byID[id] = area
	}
	return c
}

// Areas returns the areas in catalog order.
func (c *Catalog) Areas() []Area {
	out := make([]Area, len(c.areas))
	copy(out, c.areas)
	return out
}

// Lookup returns the area for id.
func (c *Catalog) Lookup(id string) (Area, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Labels maps area ids to labels, dropping unknown ids.
func (c *Catalog) Labels(ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if a, ok := c.byID[id]; ok {
			labels = append(labels, a.Label)
		}
	}
	return labels
}

// CallbackData returns the button payload that toggles id.
func CallbackData(id string) string {
	return callbackPrefix + id
}

// ParseCallback turns button payloads back into events.
func ParseCallback(data string) (Event, error) {
	switch data {
	case "DONE":
		return FinishAreas(), nil
	case "SAVE":
		return ConfirmSave(), nil
	case "EDIT_DATE":
		return EditDate(), nil
	case "APPEND":
		return ChooseAppend(), nil
	case "OVERWRITE":
		return ChooseOverwrite(), nil
	case "CANCEL":
		return Cancel(), nil
	}
	if id, ok := strings.CutPrefix(data, callbackPrefix); ok && id != "" {
		return ToggleArea(id), nil
	}
	return Event{}, fmt.Errorf("%w: unknown callback %q", ErrInvalidEvent, data)
}
