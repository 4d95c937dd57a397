package tags

import "fmt"

// ContentKind distinguishes the shapes a field value can take.
type ContentKind int

const (
	KindText ContentKind = iota
	KindComment
	KindPicture
	KindOther
)

// Content is one decoded field value. It is comparable, so two files carry
// the same value exactly when their Contents are ==.
type Content struct {
	Kind        ContentKind
	Text        string
	Description string
	MIMEType    string
}

// TextContent builds a plain text value.
func TextContent(s string) Content {
	return Content{Kind: KindText, Text: s}
}

// CommentContent builds a comment-style value (COMM, USLT, TXXX).
func CommentContent(description, text string) Content {
	return Content{Kind: KindComment, Description: description, Text: text}
}

// PictureContent builds an attached-picture value. Image bytes are not kept.
func PictureContent(description, mimeType string) Content {
	return Content{Kind: KindPicture, Description: description, MIMEType: mimeType}
}

// String renders the value for display.
func (c Content) String() string {
	switch c.Kind {
	case KindText, KindComment:
		return c.Text
	case KindPicture:
		if c.Description == "" {
			return c.MIMEType
		}
		return fmt.Sprintf("%s (%s)", c.Description, c.MIMEType)
	default:
		return "<binary>"
	}
}

// Field pairs a field id with its value.
type Field struct {
	ID      FieldID
	Content Content
}

// Container is a parsed tag for one file.
type Container interface {
	// Fields returns every decoded field, vocabulary fields first in
	// vocabulary order, then any others in the order they were added.
	Fields() []Field
	// Get looks up a single field.
	Get(id FieldID) (Content, bool)
}

// Parser turns a file into a Container.
type Parser interface {
	Parse(path string) (Container, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(path string) (Container, error)

// Parse calls f(path).
func (f ParserFunc) Parse(path string) (Container, error) {
	return f(path)
}

// Tag is the in-memory Container implementation.
type Tag struct {
	values map[FieldID]Content
	extra  []FieldID
}

// NewTag builds a Tag from fields. Later fields with the same id win.
func NewTag(fields ...Field) *Tag {
	t := &Tag{values: make(map[FieldID]Content, len(fields))}
	for _, f := range fields {
		t.Set(f.ID, f.Content)
	}
	return t
}

// Set stores c under id.
func (t *Tag) Set(id FieldID, c Content) {
	if _, exists := t.values[id]; !exists && !Known(id) {
		t.extra = append(t.extra, id)
	}
	t.values[id] = c
}

func (t *Tag) Get(id FieldID) (Content, bool) {
	c, ok := t.values[id]
	return c, ok
}

func (t *Tag) Fields() []Field {
	fields := make([]Field, 0, len(t.values))
	for _, id := range Vocabulary {
		if c, ok := t.values[id]; ok {
			fields = append(fields, Field{ID: id, Content: c})
		}
	}
	for _, id := range t.extra {
		fields = append(fields, Field{ID: id, Content: t.values[id]})
	}
	return fields
}

// Len returns the number of fields stored.
func (t *Tag) Len() int {
	return len(t.values)
}
