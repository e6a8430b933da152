package playlist

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWriteRoundTrip(t *testing.T) {
	data, err := os.ReadFile("testdata/example.m3u")
	if err != nil {
		t.Fatalf("Failed to read test file: %v", err)
	}

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out := Write(doc)

	// The fixture is already in normalized form, so the round trip is exact.
	if string(out) != string(data) {
		t.Errorf("Expected byte-identical output:\n--- want ---\n%s\n--- got ---\n%s", data, out)
	}

	reparsed, err := Parse(out)
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}

	ignoreRaw := cmpopts.IgnoreFields(Entry{}, "RawHeader")
	if diff := cmp.Diff(doc, reparsed, ignoreRaw); diff != "" {
		t.Errorf("Round trip changed document structure (-want +got):\n%s", diff)
	}
}

func TestWriteNormalizesSpacing(t *testing.T) {
	input := "#EXTM3U\n#EXTINF:-1  tvg-id=\"x\"   tvg-name=\"Y\"  ,  Channel\nhttp://stream/1\n"

	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := "#EXTM3U\n#EXTINF:-1 tvg-id=\"x\" tvg-name=\"Y\",Channel\nhttp://stream/1\n"
	if got := string(Write(doc)); got != want {
		t.Errorf("Expected normalized output %q, got %q", want, got)
	}
}

func TestWriteEntryWithoutURL(t *testing.T) {
	input := "#EXTM3U\n#EXTINF:-1 tvg-id=\"x\",Channel\n"

	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := "#EXTM3U\n#EXTINF:-1 tvg-id=\"x\",Channel\n"
	if got := string(Write(doc)); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
