// Package merge matches playlist entries against an EPG icon index and
// rewrites their tvg-logo attributes.
package merge

import (
	"strings"

	"github.com/savid/epg-icons/internal/epg"
	"github.com/savid/epg-icons/internal/playlist"
)

// Merge sets tvg-logo on every playlist entry with a matching EPG icon and
// returns the number of entries matched. Entries without a match are left
// untouched, as are pass-through lines.
func Merge(doc *playlist.Document, index epg.Index) int {
	matched := 0

	for _, item := range doc.Items {
		if item.Entry == nil {
			continue
		}
		icon, ok := match(item.Entry, index)
		if !ok {
			continue
		}
		item.Entry.SetAttr("tvg-logo", icon)
		matched++
	}

	return matched
}

// match tries the lookup strategies in fixed priority order: exact tvg-id,
// lowercased tvg-id, lowercased tvg-name, lowercased display title.
func match(entry *playlist.Entry, index epg.Index) (string, bool) {
	if id, ok := entry.Attr("tvg-id"); ok && id != "" {
		if icon, ok := index.Lookup(id); ok {
			return icon, true
		}
		if icon, ok := index.Lookup(strings.ToLower(id)); ok {
			return icon, true
		}
	}

	if name, ok := entry.Attr("tvg-name"); ok && name != "" {
		if icon, ok := index.Lookup(strings.ToLower(name)); ok {
			return icon, true
		}
	}

	if entry.Title != "" {
		if icon, ok := index.Lookup(strings.ToLower(entry.Title)); ok {
			return icon, true
		}
	}

	return "", false
}
