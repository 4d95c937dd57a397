// Package tags is the boundary to the audio tag codec. It defines the fixed
// field vocabulary the browser summarizes, the Container contract a parsed
// tag satisfies, and an ID3 parser backed by github.com/dhowden/tag.
package tags

// FieldID is the short frame code naming a tag field.
type FieldID string

const (
	Image       FieldID = "APIC"
	Comment     FieldID = "COMM"
	Album       FieldID = "TALB"
	Genre       FieldID = "TCON"
	Title       FieldID = "TIT2"
	Artist      FieldID = "TPE1"
	AlbumArtist FieldID = "TPE2"
	Disc        FieldID = "TPOS"
	Track       FieldID = "TRCK"
	ISRC        FieldID = "TSRC"
	Encoding    FieldID = "TSSE"
	Date        FieldID = "TYER"
	Custom      FieldID = "TXXX"
	Lyrics      FieldID = "USLT"
)

// Vocabulary is the ordered set of fields the summary is built over.
var Vocabulary = []FieldID{
	Image,
	Comment,
	Album,
	Genre,
	Title,
	Artist,
	AlbumArtist,
	Disc,
	Track,
	ISRC,
	Encoding,
	Date,
	Custom,
	Lyrics,
}

var displayNames = map[FieldID]string{
	Image:       "Image",
	Comment:     "Comment",
	Album:       "Album",
	Genre:       "Genre",
	Title:       "Title",
	Artist:      "Artist",
	AlbumArtist: "Album Artist",
	Disc:        "Disc",
	Track:       "Track",
	ISRC:        "ISRC",
	Encoding:    "Encoding",
	Date:        "Date",
	Custom:      "Custom Frame",
	Lyrics:      "Lyrics",
}

// aliases maps frame codes from other tag revisions onto the vocabulary:
// ID3v2.2 three-letter frames, the ID3v2.4 recording date and the ID3v1 keys.
var aliases = map[string]FieldID{
	"PIC": Image,
	"COM": Comment,
	"TAL": Album,
	"TCO": Genre,
	"TT2": Title,
	"TP1": Artist,
	"TP2": AlbumArtist,
	"TPA": Disc,
	"TRK": Track,
	"TRC": ISRC,
	"TSS": Encoding,
	"TYE": Date,
	"TXX": Custom,
	"ULT": Lyrics,

	"TDRC": Date,

	"title":   Title,
	"artist":  Artist,
	"album":   Album,
	"year":    Date,
	"comment": Comment,
	"track":   Track,
	"genre":   Genre,
}

// Known reports whether id is part of the vocabulary.
func Known(id FieldID) bool {
	_, ok := displayNames[id]
	return ok
}

// DisplayName returns the human label for id, or the raw code for fields
// outside the vocabulary.
func (id FieldID) DisplayName() string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return string(id)
}

// Normalize maps a raw codec key onto the vocabulary. The second result is
// false for keys the browser does not summarize.
func Normalize(raw string) (FieldID, bool) {
	if id := FieldID(raw); Known(id) {
		return id, true
	}
	id, ok := aliases[raw]
	return id, ok
}
