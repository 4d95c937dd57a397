package selection

import (
	"rime/internal/lister"
	"rime/internal/tags"
)

// Display strings for fields without a single value.
const (
	NoneSentinel     = "<none>"
	MultipleSentinel = "<multiple>"
)

// State says how many distinct values the selected files supply for a field.
type State int

const (
	None State = iota
	Single
	Multiple
)

// Value is the summarized value of one field.
type Value struct {
	State   State
	Content tags.Content
}

// Display renders the value, substituting the sentinels.
func (v Value) Display() string {
	switch v.State {
	case Single:
		return v.Content.String()
	case Multiple:
		return MultipleSentinel
	default:
		return NoneSentinel
	}
}

// Summary maps every vocabulary field to its summarized value.
type Summary map[tags.FieldID]Value

// Row is one display line of a summary.
type Row struct {
	ID      tags.FieldID
	Name    string
	State   State
	Display string
}

// NewSummary returns the baseline summary with every field set to None.
func NewSummary() Summary {
	s := make(Summary, len(tags.Vocabulary))
	for _, id := range tags.Vocabulary {
		s[id] = Value{State: None}
	}
	return s
}

// Get returns the value for id; fields outside the vocabulary are None.
func (s Summary) Get(id tags.FieldID) Value {
	return s[id]
}

// Rows returns the summary in vocabulary order.
func (s Summary) Rows() []Row {
	rows := make([]Row, 0, len(tags.Vocabulary))
	for _, id := range tags.Vocabulary {
		rows = append(rows, Row{ID: id, Name: id.DisplayName(), State: s[id].State, Display: s[id].Display()})
	}
	return rows
}

func (s Summary) clone() Summary {
	out := make(Summary, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Aggregate derives the summary from a selection. Only files with a parsed
// tag contribute; directories and unreadable files contribute nothing.
func Aggregate(entries map[string]*Entry) Summary {
	summary := NewSummary()
	for _, e := range entries {
		if e.Kind != lister.File || e.Tag == nil {
			continue
		}
		for _, id := range tags.Vocabulary {
			c, ok := e.Tag.Get(id)
			if !ok {
				continue
			}
			current := summary[id]
			switch {
			case current.State == None:
				summary[id] = Value{State: Single, Content: c}
			case current.State == Single && current.Content != c:
				summary[id] = Value{State: Multiple}
			}
		}
	}
	return summary
}
