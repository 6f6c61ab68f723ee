// Package radiotap decodes the radiotap capture header: a
// self-describing, variable-length structure prepended to 802.11
// frames by monitor-mode capture subsystems. The decoder walks the
// present-word chain, applies per-field alignment, skips fields it does
// not recognize as long as their width is documented, and follows
// namespace switches into vendor blocks and back.
//
// Decoded values that reference the capture (vendor payloads) borrow
// from the caller's buffer, so the buffer must outlive the result.
package radiotap

import (
	"fmt"
	"io"
)

// Iterator yields the namespace blocks of one radiotap header, in wire
// order. It is exhausted once every presence segment has been walked;
// Next then returns io.EOF.
//
// An Iterator owns its cursor: it may be driven by exactly one caller.
// Independent Iterators over independent buffers share no state.
type Iterator struct {
	header   Header
	sel      *Selector
	segments []presenceSegment
	next     int
	w        walker
	failed   error
}

// NewIterator parses the radiotap preamble and presence chain of data
// and positions an iterator before the first namespace block. The
// second return value is the remainder of the buffer past the declared
// header length, holding the 802.11 frame. A nil selector includes
// everything.
func NewIterator(data []byte, sel *Selector) (*Iterator, []byte, error) {
	hdr, segments, err := parseHeader(data)
	if err != nil {
		return nil, nil, err
	}
	it := &Iterator{
		header:   hdr,
		sel:      sel,
		segments: segments,
		w: walker{
			data:  data,
			base:  hdr.Size,
			limit: hdr.Length,
		},
	}
	return it, data[hdr.Length:], nil
}

// Header returns the parsed fixed header and presence chain.
func (it *Iterator) Header() Header {
	return it.header
}

// Next decodes and returns the next namespace block. It returns io.EOF
// at the normal end of the sequence. A structural error ends the
// sequence; blocks already returned remain valid.
func (it *Iterator) Next() (Block, error) {
	if it.failed != nil {
		return Block{}, it.failed
	}
	// Every segment is walked even when the cursor has already reached
	// the declared length: a segment with field bits still set at that
	// point must surface as a truncation, not as a clean end.
	if it.next >= len(it.segments) {
		return Block{}, io.EOF
	}
	seg := it.segments[it.next]
	it.next++
	it.w.rebase()

	switch seg.ns {
	case NamespaceVendor:
		vns, err := it.w.walkVendor(it.sel)
		if err != nil {
			it.failed = err
			return Block{}, err
		}
		return Block{Namespace: NamespaceVendor, Vendor: vns}, nil
	default:
		fields, err := it.w.walkStandard(seg.words, it.sel)
		if err != nil {
			it.failed = err
			return Block{}, err
		}
		return Block{Namespace: NamespaceRadiotap, Fields: fields}, nil
	}
}

// Parse decodes every namespace block of the capture beginning at
// data[0] and merges the standard-namespace fields into one Capture,
// collecting vendor blocks alongside. The returned slice is the
// unconsumed remainder of the buffer past the declared header length.
func Parse(data []byte, sel *Selector) (*Capture, []byte, error) {
	it, rest, err := NewIterator(data, sel)
	if err != nil {
		return nil, nil, err
	}
	capture := &Capture{Header: it.Header()}
	for {
		block, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		switch block.Namespace {
		case NamespaceVendor:
			capture.Vendor = append(capture.Vendor, *block.Vendor)
		default:
			capture.merge(block.Fields)
		}
	}
	return capture, rest, nil
}

// FromBytes is the convenience form of Parse that discards the
// remainder.
func FromBytes(data []byte) (*Capture, error) {
	capture, _, err := Parse(data, nil)
	return capture, err
}

// ConsumedLength reports the number of bytes a successful decode of
// this capture accounts for, which is always the declared header
// length.
func (c *Capture) ConsumedLength() int {
	return c.Header.Length
}

// String summarizes a vendor namespace for logs and diagnostics.
func (v VendorNamespace) String() string {
	return fmt.Sprintf("vendor %02x:%02x:%02x sub %d (%d bytes)",
		v.OUI[0], v.OUI[1], v.OUI[2], v.SubNamespace, v.SkipLength)
}
