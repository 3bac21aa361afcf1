package tagging

import (
	"slices"
	"strings"
)

// View selects which part of the vocabulary a Selector suggests.
type View int

const (
	// ViewRecent shows the first TopN vocabulary entries. It is the default.
	ViewRecent View = iota
	// ViewAll shows every matching vocabulary entry.
	ViewAll
)

// DefaultTopN is the size of the recent view when SelectorConfig.TopN is unset.
const DefaultTopN = 8

// SelectorConfig wires a Selector to its entity and to the vocabulary owner.
type SelectorConfig struct {
	// Selected is the entity's current assignment.
	Selected []string
	// Vocabulary is the registry contents, most relevant first.
	Vocabulary []string
	// TopN bounds the recent view. Zero means DefaultTopN.
	TopN int
	// OnCreate is asked to register a new tag and reports success.
	OnCreate func(name string) bool
	// OnChange receives the selection after every change.
	OnChange func(selected []string)
}

// Suggestion is one selectable vocabulary entry.
type Suggestion struct {
	Tag      string
	Selected bool
}

// Selector is the tag input state for one entity.
// Selection order is interaction order, not registry order.
// It is not safe for concurrent use.
type Selector struct {
	selected   []string
	vocabulary []string
	query      string
	view       View
	topN       int
	onCreate   func(string) bool
	onChange   func([]string)
}

// NewSelector returns a Selector in the recent view with an empty query.
func NewSelector(cfg SelectorConfig) *Selector {
	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Selector{
		selected:   Dedupe(cfg.Selected),
		vocabulary: Dedupe(cfg.Vocabulary),
		topN:       topN,
		onCreate:   cfg.OnCreate,
		onChange:   cfg.OnChange,
	}
}

// Selected returns the current selection.
func (s *Selector) Selected() []string { return slices.Clone(s.selected) }

// Query returns the raw text filter.
func (s *Selector) Query() string { return s.query }

// View returns the active view.
func (s *Selector) View() View { return s.view }

// SetVocabulary replaces the vocabulary, e.g. after a rename elsewhere.
func (s *Selector) SetVocabulary(vocabulary []string) {
	s.vocabulary = Dedupe(vocabulary)
}

// Toggle removes tag from the selection if present, otherwise appends it.
func (s *Selector) Toggle(tag string) {
	tag = Normalize(tag)
	if tag == "" {
		return
	}
	if i := slices.Index(s.selected, tag); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
	} else {
		s.selected = append(s.selected, tag)
	}
	s.changed()
}

// SetQuery updates the text filter. Clearing it resets the view.
func (s *Selector) SetQuery(q string) {
	s.query = q
	if strings.TrimSpace(q) == "" {
		s.view = ViewRecent
	}
}

// ShowAll switches to the full vocabulary view.
func (s *Selector) ShowAll() { s.view = ViewAll }

// ShowRecent switches back to the recent view.
func (s *Selector) ShowRecent() { s.view = ViewRecent }

// Blur is called when the input loses focus. It resets the view.
func (s *Selector) Blur() { s.view = ViewRecent }

// Suggestions returns vocabulary entries containing the query
// case-insensitively, truncated to TopN in the recent view.
func (s *Selector) Suggestions() []Suggestion {
	matches := s.matches()
	if s.view == ViewRecent && len(matches) > s.topN {
		matches = matches[:s.topN]
	}
	out := make([]Suggestion, len(matches))
	for i, t := range matches {
		out[i] = Suggestion{Tag: t, Selected: slices.Contains(s.selected, t)}
	}
	return out
}

// HasMore reports whether the recent view is hiding matches.
func (s *Selector) HasMore() bool {
	return s.view == ViewRecent && len(s.matches()) > s.topN
}

// CanCreate reports whether the query names a tag that does not exist yet.
// Existence is exact: "ops" is creatable next to "ops-team" and "Ops".
func (s *Selector) CanCreate() bool {
	name := Normalize(s.query)
	return name != "" && !slices.Contains(s.vocabulary, name)
}

// Create asks OnCreate to register the query as a new tag. On success the
// tag joins the vocabulary and the selection and the query is cleared.
func (s *Selector) Create() bool {
	if !s.CanCreate() || s.onCreate == nil {
		return false
	}
	name := Normalize(s.query)
	if !s.onCreate(name) {
		return false
	}
	s.vocabulary = append(s.vocabulary, name)
	if !slices.Contains(s.selected, name) {
		s.selected = append(s.selected, name)
		s.changed()
	}
	s.SetQuery("")
	return true
}

func (s *Selector) matches() []string {
	q := strings.ToLower(strings.TrimSpace(s.query))
	if q == "" {
		return slices.Clone(s.vocabulary)
	}
	var out []string
	for _, t := range s.vocabulary {
		if strings.Contains(strings.ToLower(t), q) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Selector) changed() {
	if s.onChange != nil {
		s.onChange(slices.Clone(s.selected))
	}
}
