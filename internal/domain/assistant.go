package domain

import "slices"

// Assistant is a conversational agent configuration managed from the console.
type Assistant struct {
	Entity
	Model        string   `json:"model,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Tools        []string `json:"tools,omitempty"`
}

// Meta implements Taggable.
func (a *Assistant) Meta() *Entity { return &a.Entity }

// WithTags returns a copy of a carrying tags. The receiver is not modified.
func (a *Assistant) WithTags(tags []string) *Assistant {
	c := *a
	c.Tags = tags
	c.Tools = slices.Clone(a.Tools)
	return &c
}
