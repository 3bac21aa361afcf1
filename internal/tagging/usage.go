package tagging

import "strings"

// Usage lists the entities that hold a tag. It is presentation-only.
type Usage struct {
	Tag      string   `json:"tag"`
	Entities []string `json:"entities"`
}

// Unused reports whether no entity holds the tag.
func (u Usage) Unused() bool {
	return len(u.Entities) == 0
}

// String renders "unused" or "used by: A, B".
func (u Usage) String() string {
	if u.Unused() {
		return "unused"
	}
	return "used by: " + strings.Join(u.Entities, ", ")
}
