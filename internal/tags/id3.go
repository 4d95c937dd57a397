package tags

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"rime/internal/errors"

	"github.com/dhowden/tag"
)

// ID3Parser reads tags with github.com/dhowden/tag.
type ID3Parser struct{}

// NewID3Parser returns the default codec.
func NewID3Parser() *ID3Parser {
	return &ID3Parser{}
}

// Parse opens path and decodes its tag frames. Any failure, including a file
// with no tag at all, is reported as an *errors.TagError.
func (p *ID3Parser) Parse(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewTagError(path, err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil, errors.NewTagError(path, err)
	}
	return FromRaw(meta.Raw()), nil
}

// FromRaw converts a codec raw frame map into a Tag. Exact vocabulary codes
// take precedence over aliased ones; keys outside both are kept as extra
// fields under their raw code.
func FromRaw(raw map[string]interface{}) *Tag {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := NewTag()
	var aliased []string
	for _, k := range keys {
		if Known(FieldID(k)) {
			t.Set(FieldID(k), convert(raw[k]))
			continue
		}
		if _, ok := aliases[k]; ok {
			aliased = append(aliased, k)
			continue
		}
		t.Set(FieldID(k), convert(raw[k]))
	}
	for _, k := range aliased {
		id := aliases[k]
		if _, exists := t.Get(id); exists {
			continue
		}
		t.Set(id, convert(raw[k]))
	}
	return t
}

func convert(v interface{}) Content {
	switch v := v.(type) {
	case string:
		return TextContent(strings.TrimRight(v, "\x00"))
	case int:
		return TextContent(strconv.Itoa(v))
	case *tag.Comm:
		return CommentContent(v.Description, v.Text)
	case *tag.Picture:
		return PictureContent(v.Description, v.MIMEType)
	default:
		return Content{Kind: KindOther}
	}
}
