// Package playlist provides parsing and serialization of M3U playlists.
package playlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMissingHeader is returned when the playlist does not begin with #EXTM3U.
var ErrMissingHeader = errors.New("playlist does not begin with #EXTM3U")

const extinfPrefix = "#EXTINF:"

// Some playlists carry very long stream URLs.
const maxLineSize = 1024 * 1024

var attrRegex = regexp.MustCompile(`([a-zA-Z0-9_-]+)="([^"]*)"`)

// Attr is a single key="value" attribute on an #EXTINF line.
type Attr struct {
	Name  string
	Value string
}

// Entry represents a single channel entry in an M3U playlist.
type Entry struct {
	RawHeader string
	Duration  string
	Attrs     []Attr
	Title     string
	URL       string
}

// Attr returns the value of the named attribute.
func (e *Entry) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr overwrites the named attribute in place, or appends it when absent.
func (e *Entry) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Item is either a playlist entry or a verbatim pass-through line.
type Item struct {
	Entry *Entry
	Raw   string
}

// Document is a parsed playlist: entries and pass-through lines in original order.
type Document struct {
	Items []Item
}

// EntryCount returns the number of channel entries in the document.
func (d *Document) EntryCount() int {
	count := 0
	for _, item := range d.Items {
		if item.Entry != nil {
			count++
		}
	}
	return count
}

// Parse extracts playlist entries from M3U data. The first non-empty line
// must be the #EXTM3U marker. Lines that are not part of an entry (directives,
// comments, blanks) are retained verbatim in their original position. An
// #EXTINF line with no following URL yields an entry with an empty URL.
func Parse(data []byte) (*Document, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)

	doc := &Document{}
	sawHeader := false

	var current *Entry

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if !sawHeader {
			if trimmed == "" {
				doc.Items = append(doc.Items, Item{Raw: line})
				continue
			}
			if !strings.HasPrefix(trimmed, "#EXTM3U") {
				return nil, ErrMissingHeader
			}
			sawHeader = true
			doc.Items = append(doc.Items, Item{Raw: line})
			continue
		}

		if strings.HasPrefix(trimmed, extinfPrefix) {
			current = parseHeader(trimmed)
			doc.Items = append(doc.Items, Item{Entry: current})
			continue
		}

		if current != nil && trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			current.URL = trimmed
			current = nil
			continue
		}

		doc.Items = append(doc.Items, Item{Raw: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning M3U data: %w", err)
	}

	if !sawHeader {
		return nil, ErrMissingHeader
	}

	return doc, nil
}

// parseHeader splits an #EXTINF line into duration, attributes and title.
// The duration runs up to the first space or comma; the title is whatever
// trails the last recognized attribute, or the tail after the first comma
// when no attributes are present.
func parseHeader(line string) *Entry {
	entry := &Entry{RawHeader: line}

	rest := line[len(extinfPrefix):]
	end := strings.IndexAny(rest, " ,")
	if end == -1 {
		entry.Duration = rest
		return entry
	}
	entry.Duration = rest[:end]
	tail := rest[end:]

	matches := attrRegex.FindAllStringSubmatchIndex(tail, -1)
	if len(matches) == 0 {
		if comma := strings.Index(tail, ","); comma != -1 {
			entry.Title = strings.TrimSpace(tail[comma+1:])
		}
		return entry
	}

	for _, m := range matches {
		entry.Attrs = append(entry.Attrs, Attr{
			Name:  tail[m[2]:m[3]],
			Value: tail[m[4]:m[5]],
		})
	}

	title := tail[matches[len(matches)-1][1]:]
	title = strings.TrimLeft(title, " \t")
	title = strings.TrimPrefix(title, ",")
	entry.Title = strings.TrimSpace(title)

	return entry
}
