package radiotap

import (
	"encoding/binary"
	"fmt"
)

const (
	// minHeaderLength covers the version, pad and length bytes plus one
	// mandatory present word.
	minHeaderLength = 8

	// maxPresentWords bounds the present-word chain so a hostile
	// capture cannot demand unbounded work.
	maxPresentWords = 32

	presentBitRadiotapNS = uint32(1) << 29
	presentBitVendorNS   = uint32(1) << 30
	presentBitExt        = uint32(1) << 31

	// presentFieldBits masks the bits of a word that denote fields
	// rather than namespace control.
	presentFieldBits = 29
)

// presenceSegment groups the present words that share one namespace.
// Bit numbering continues across the words of a segment: word i bit b
// requests field bit 32*i+b.
type presenceSegment struct {
	ns    Namespace
	words []uint32
}

// parseHeader reads the fixed preamble and the present-word chain and
// splits the chain into namespace segments.
func parseHeader(data []byte) (Header, []presenceSegment, error) {
	var hdr Header
	if len(data) < 4 {
		return hdr, nil, fmt.Errorf("%w: %d bytes before the length field", ErrTruncatedHeader, len(data))
	}
	hdr.Version = data[0]
	if hdr.Version != 0 {
		return hdr, nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, hdr.Version)
	}
	hdr.Length = int(binary.LittleEndian.Uint16(data[2:4]))
	if hdr.Length < minHeaderLength {
		return hdr, nil, fmt.Errorf("%w: declared length %d below minimum %d", ErrMalformedHeader, hdr.Length, minHeaderLength)
	}
	if len(data) < hdr.Length {
		return hdr, nil, fmt.Errorf("%w: declared length %d, buffer holds %d", ErrTruncatedHeader, hdr.Length, len(data))
	}

	offset := 4
	for {
		if len(hdr.Present) == maxPresentWords {
			return hdr, nil, fmt.Errorf("%w: present chain exceeds %d words", ErrMalformedHeader, maxPresentWords)
		}
		if offset+4 > hdr.Length {
			return hdr, nil, fmt.Errorf("%w: present word at offset %d overruns declared length %d", ErrTruncatedHeader, offset, hdr.Length)
		}
		word := binary.LittleEndian.Uint32(data[offset : offset+4])
		hdr.Present = append(hdr.Present, word)
		offset += 4
		if word&presentBitExt == 0 {
			break
		}
	}
	hdr.Size = offset

	segments, err := segmentPresent(hdr.Present)
	if err != nil {
		return hdr, nil, err
	}
	return hdr, segments, nil
}

// segmentPresent splits the present chain at the namespace control
// bits. Bit 29 resets the following words to the standard namespace,
// bit 30 opens a vendor namespace. A vendor announcement in the final
// word still yields a (wordless) vendor segment, because the vendor
// descriptor and its skip bytes are in the data region regardless.
func segmentPresent(words []uint32) ([]presenceSegment, error) {
	segments := []presenceSegment{{ns: NamespaceRadiotap}}
	for i, word := range words {
		cur := &segments[len(segments)-1]
		cur.words = append(cur.words, word)

		reset := word&presentBitRadiotapNS != 0
		vendor := word&presentBitVendorNS != 0
		if reset && vendor {
			return nil, fmt.Errorf("%w: word %d sets both namespace control bits", ErrMalformedHeader, i)
		}
		last := i == len(words)-1
		switch {
		case vendor:
			segments = append(segments, presenceSegment{ns: NamespaceVendor})
		case reset && !last:
			segments = append(segments, presenceSegment{ns: NamespaceRadiotap})
		}
	}
	return segments, nil
}
