package pcapio

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

func writeCapture(t *testing.T, link layers.LinkType, frames ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := pcapgo.NewWriter(&buf)
	if err := w.WriteFileHeader(65536, link); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	ts := time.Unix(1700000000, 0)
	for i, frame := range frames {
		ci := gopacket.CaptureInfo{
			Timestamp:     ts.Add(time.Duration(i) * time.Millisecond),
			CaptureLength: len(frame),
			Length:        len(frame),
		}
		if err := w.WritePacket(ci, frame); err != nil {
			t.Fatalf("WritePacket: %v", err)
		}
	}
	return buf.Bytes()
}

func TestReaderYieldsFrames(t *testing.T) {
	frames := [][]byte{
		{0, 0, 8, 0, 0, 0, 0, 0, 1, 2, 3},
		{0, 0, 8, 0, 0, 0, 0, 0, 4, 5},
	}
	capture := writeCapture(t, layers.LinkTypeIEEE80211Radio, frames...)

	r, err := NewReader(bytes.NewReader(capture))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.LinkType() != layers.LinkTypeIEEE80211Radio {
		t.Fatalf("link type = %v", r.LinkType())
	}
	for i, want := range frames {
		data, ci, err := r.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if !bytes.Equal(data, want) {
			t.Fatalf("frame %d = %x, want %x", i, data, want)
		}
		if ci.CaptureLength != len(want) {
			t.Fatalf("frame %d capture length = %d", i, ci.CaptureLength)
		}
	}
	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next past end = %v, want io.EOF", err)
	}
}

func TestReaderRejectsWrongLinkType(t *testing.T) {
	capture := writeCapture(t, layers.LinkTypeEthernet, []byte{1, 2, 3})
	if _, err := NewReader(bytes.NewReader(capture)); !errors.Is(err, ErrLinkType) {
		t.Fatalf("NewReader error = %v, want %v", err, ErrLinkType)
	}
}

func TestReaderRejectsGarbage(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte{1, 2, 3, 4})); err == nil {
		t.Fatal("NewReader accepted a malformed stream")
	}
}
