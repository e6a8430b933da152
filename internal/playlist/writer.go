package playlist

import (
	"bytes"
	"fmt"
)

// Write renders the document back into M3U text. Pass-through lines are
// reproduced verbatim; #EXTINF lines are rebuilt from the parsed duration,
// attributes and title, with attribute values always double-quoted.
func Write(doc *Document) []byte {
	var buf bytes.Buffer

	for _, item := range doc.Items {
		if item.Entry == nil {
			buf.WriteString(item.Raw)
			buf.WriteString("\n")
			continue
		}

		entry := item.Entry
		buf.WriteString(extinfPrefix)
		buf.WriteString(entry.Duration)
		for _, attr := range entry.Attrs {
			fmt.Fprintf(&buf, " %s=\"%s\"", attr.Name, attr.Value)
		}
		buf.WriteString(",")
		buf.WriteString(entry.Title)
		buf.WriteString("\n")

		if entry.URL != "" {
			buf.WriteString(entry.URL)
			buf.WriteString("\n")
		}
	}

	return buf.Bytes()
}
