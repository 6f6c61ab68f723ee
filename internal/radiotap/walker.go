package radiotap

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

const vendorDescriptorSize = 6

// walker advances through the field data of one namespace block. The
// offset is kept relative to the start of the block's data region, and
// alignment padding is computed against that base.
type walker struct {
	data []byte
	// base is the absolute offset of the current namespace's data
	// region within data.
	base int
	// offset is relative to base.
	offset int
	// limit is the declared header length; no field may extend past it.
	limit int
}

// alignUp rounds the relative offset up to the field's alignment.
func (w *walker) alignUp(align int) {
	w.offset = (w.offset + align - 1) &^ (align - 1)
}

// field aligns, bounds-checks and consumes one fixed-width field,
// returning its raw slice.
func (w *walker) field(desc FieldDescriptor) ([]byte, error) {
	w.alignUp(desc.Align)
	start := w.base + w.offset
	end := start + desc.Size
	if end > w.limit {
		return nil, fmt.Errorf("%w: bit %d needs bytes [%d,%d) past declared length %d",
			ErrTruncatedBody, desc.Bit, start, end, w.limit)
	}
	w.offset += desc.Size
	return w.data[start:end], nil
}

// cursor returns the absolute position of the walker.
func (w *walker) cursor() int {
	return w.base + w.offset
}

// rebase starts a new namespace data region at the current cursor.
func (w *walker) rebase() {
	w.base = w.cursor()
	w.offset = 0
}

// walkStandard consumes the fields requested by one standard-namespace
// segment in ascending bit order, materializing those the selector
// keeps. Every set bit is sized and skipped even when unselected, since
// the offsets of later fields depend on all earlier ones.
func (w *walker) walkStandard(words []uint32, sel *Selector) (*Fields, error) {
	fields := &Fields{}
	for i, word := range words {
		if bits.OnesCount32(word<<(32-presentFieldBits)) == 0 {
			continue
		}
		for b := 0; b < presentFieldBits; b++ {
			if word&(1<<uint(b)) == 0 {
				continue
			}
			bit := 32*i + b
			desc, ok := Describe(bit)
			if !ok {
				return nil, fmt.Errorf("%w: present bit %d has no resolvable width", ErrMalformedHeader, bit)
			}
			raw, err := w.field(desc)
			if err != nil {
				return nil, err
			}
			if desc.Known && sel.selected(desc.Kind) {
				fields.assign(desc.Kind, raw)
			}
		}
	}
	return fields, nil
}

// walkVendor consumes one vendor block: the six-byte descriptor
// followed by exactly skip-length opaque bytes. The payload slice
// borrows from the capture buffer and is only attached when the
// selector keeps vendor data; the advance happens either way.
func (w *walker) walkVendor(sel *Selector) (*VendorNamespace, error) {
	start := w.base + w.offset
	if start+vendorDescriptorSize > w.limit {
		return nil, fmt.Errorf("%w: vendor descriptor at offset %d past declared length %d",
			ErrTruncatedBody, start, w.limit)
	}
	raw := w.data[start : start+vendorDescriptorSize]
	vns := &VendorNamespace{
		SubNamespace: raw[3],
		SkipLength:   binary.LittleEndian.Uint16(raw[4:6]),
	}
	copy(vns.OUI[:], raw[0:3])
	w.offset += vendorDescriptorSize

	dataStart := w.base + w.offset
	dataEnd := dataStart + int(vns.SkipLength)
	if dataEnd > w.limit {
		return nil, fmt.Errorf("%w: vendor block of %d bytes at offset %d past declared length %d",
			ErrTruncatedBody, vns.SkipLength, dataStart, w.limit)
	}
	if sel.vendorSelected() {
		vns.Data = w.data[dataStart:dataEnd]
	}
	w.offset += int(vns.SkipLength)
	return vns, nil
}
