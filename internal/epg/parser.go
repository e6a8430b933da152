// Package epg provides parsing of XMLTV (EPG) documents into a channel icon index.
package epg

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// TV represents the root element of an XMLTV document.
type TV struct {
	XMLName  xml.Name  `xml:"tv"`
	Channels []Channel `xml:"channel"`
}

// Channel represents a channel in the EPG data.
type Channel struct {
	ID           string   `xml:"id,attr"`
	DisplayNames []string `xml:"display-name"`
	Icons        []Icon   `xml:"icon"`
}

// Icon represents a channel icon in the EPG data.
type Icon struct {
	Src string `xml:"src,attr"`
}

// Index maps normalized lookup keys to icon URLs. Keys are registered per
// channel as the raw id, the lowercased id, and each lowercased display name.
type Index map[string]string

// Lookup returns the icon URL registered under key.
func (idx Index) Lookup(key string) (string, bool) {
	icon, ok := idx[key]
	return icon, ok
}

// Parse extracts a channel icon index from XMLTV data. It returns the index
// and the number of channels parsed. Channels without an id are skipped;
// channels without an icon are counted but contribute no index keys. When
// multiple channels register the same key, the last one wins.
func Parse(data []byte) (Index, int, error) {
	var tv TV
	if err := xml.Unmarshal(data, &tv); err != nil {
		return nil, 0, fmt.Errorf("failed to parse EPG XML: %w", err)
	}

	index := make(Index)
	parsed := 0

	for _, channel := range tv.Channels {
		if channel.ID == "" {
			continue
		}
		parsed++

		var icon string
		if len(channel.Icons) > 0 {
			icon = channel.Icons[0].Src
		}
		if icon == "" {
			continue
		}

		index[channel.ID] = icon
		index[strings.ToLower(channel.ID)] = icon
		for _, name := range channel.DisplayNames {
			if name == "" {
				continue
			}
			index[strings.ToLower(name)] = icon
		}
	}

	return index, parsed, nil
}
