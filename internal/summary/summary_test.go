package summary

import (
	"fmt"
	"testing"

	"example.com/rtapgate/internal/radiotap"
)

var testFrame = []byte{
	0, 0, 39, 0,
	46, 72, 0, 192,
	0, 0, 0, 128,
	0, 0, 0, 160,
	4, 0, 0, 0,
	16, 2, 158, 9, 160, 0, 227, 5, 0, 0,
	255, 255, 255, 255, 2, 0,
	222, 173,
	4,
}

func decode(t *testing.T, frame []byte) *radiotap.Capture {
	t.Helper()
	c, err := radiotap.FromBytes(frame)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return c
}

func TestAccumulatorCounts(t *testing.T) {
	acc := NewAccumulator("test.pcap")
	c := decode(t, testFrame)
	acc.AddCapture(c, len(testFrame))
	acc.AddCapture(c, len(testFrame))
	acc.AddError(fmt.Errorf("wrap: %w", radiotap.ErrTruncatedBody))
	acc.AddError(radiotap.ErrMalformedHeader)

	s := acc.Summary()
	if s.Source != "test.pcap" {
		t.Fatalf("source = %q", s.Source)
	}
	if s.Frames != 2 || s.Bytes != int64(2*len(testFrame)) {
		t.Fatalf("frames/bytes = %d/%d", s.Frames, s.Bytes)
	}
	if s.DecodeErrors != 2 || s.TruncatedFrames != 1 {
		t.Fatalf("errors = %d truncated = %d", s.DecodeErrors, s.TruncatedFrames)
	}
	if s.FieldCounts["rate"] != 2 || s.FieldCounts["channel"] != 2 {
		t.Fatalf("field counts = %v", s.FieldCounts)
	}
	if _, present := s.FieldCounts["tsft"]; present {
		t.Fatalf("absent field counted: %v", s.FieldCounts)
	}
	if s.Channels["2462"] != 2 {
		t.Fatalf("channels = %v", s.Channels)
	}
	if s.VendorOUIs["ff:ff:ff"] != 2 {
		t.Fatalf("vendor ouis = %v", s.VendorOUIs)
	}
}

func TestAccumulatorSignalStats(t *testing.T) {
	acc := NewAccumulator("")
	c := decode(t, testFrame)
	acc.AddCapture(c, len(testFrame))

	weaker := decode(t, []byte{
		0, 0, 9, 0,
		0x20, 0x00, 0x00, 0x00,
		0xcd, // -51 dBm
	})
	acc.AddCapture(weaker, 9)

	s := acc.Summary()
	if s.Signal == nil {
		t.Fatal("signal stats missing")
	}
	if s.Signal.Count != 2 || s.Signal.Min != -51 || s.Signal.Max != -29 {
		t.Fatalf("signal = %+v", s.Signal)
	}
	if s.Signal.Mean != -40 {
		t.Fatalf("mean = %v, want -40", s.Signal.Mean)
	}
}

func TestSummaryNoSignal(t *testing.T) {
	acc := NewAccumulator("")
	acc.AddCapture(decode(t, []byte{0, 0, 8, 0, 0, 0, 0, 0}), 8)
	if s := acc.Summary(); s.Signal != nil {
		t.Fatalf("signal = %+v, want nil", s.Signal)
	}
}

func TestDigestStable(t *testing.T) {
	build := func() *Summary {
		acc := NewAccumulator("a.pcap")
		acc.AddCapture(decode(t, testFrame), len(testFrame))
		return acc.Summary()
	}
	first, err := build().Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	second, err := build().Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if first != second {
		t.Fatalf("digests differ: %s vs %s", first, second)
	}

	other := NewAccumulator("a.pcap")
	other.AddCapture(decode(t, testFrame), len(testFrame))
	other.AddError(radiotap.ErrMalformedHeader)
	third, err := other.Summary().Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if third == first {
		t.Fatal("different summaries hash equally")
	}
}
