// Package summary aggregates decoded radiotap captures into per-run
// statistics: frame and error counts, field presence, signal strength,
// channel usage and vendor activity.
package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"example.com/rtapgate/internal/common"
	"example.com/rtapgate/internal/radiotap"
)

// SignalStats summarizes antenna signal readings in dBm.
type SignalStats struct {
	Count int64   `json:"count"`
	Min   int8    `json:"min"`
	Max   int8    `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summary is the aggregated result of one decode run.
type Summary struct {
	GeneratedAt     time.Time        `json:"generatedAt"`
	Source          string           `json:"source,omitempty"`
	SourceDigest    string           `json:"sourceDigest,omitempty"`
	Frames          int64            `json:"frames"`
	Bytes           int64            `json:"bytes"`
	DecodeErrors    int64            `json:"decodeErrors"`
	TruncatedFrames int64            `json:"truncatedFrames"`
	FieldCounts     map[string]int64 `json:"fieldCounts"`
	Channels        map[string]int64 `json:"channels"`
	VendorOUIs      map[string]int64 `json:"vendorOuis"`
	Signal          *SignalStats     `json:"signal,omitempty"`
}

// Accumulator folds decoded captures into a Summary. It is not safe
// for concurrent use; callers aggregating from several goroutines
// merge per-goroutine accumulators instead.
type Accumulator struct {
	source    string
	frames    int64
	bytes     int64
	errors    int64
	truncated int64
	fields    [radiotap.NumFieldKinds]int64
	channels  map[uint16]int64
	vendors   map[string]int64

	signalCount int64
	signalSum   int64
	signalMin   int8
	signalMax   int8
}

// NewAccumulator returns an empty accumulator. The source label ends up
// in the summary verbatim.
func NewAccumulator(source string) *Accumulator {
	return &Accumulator{
		source:   source,
		channels: make(map[uint16]int64),
		vendors:  make(map[string]int64),
	}
}

// AddCapture folds one successfully decoded capture in. The size is the
// full on-wire record length, radiotap header included.
func (a *Accumulator) AddCapture(c *radiotap.Capture, size int) {
	a.frames++
	a.bytes += int64(size)
	for _, k := range c.Kinds() {
		a.fields[k]++
	}
	if c.Channel != nil {
		a.channels[c.Channel.Frequency]++
	}
	for _, v := range c.Vendor {
		key := fmt.Sprintf("%02x:%02x:%02x", v.OUI[0], v.OUI[1], v.OUI[2])
		a.vendors[key]++
	}
	if c.AntennaSignal != nil {
		v := c.AntennaSignal.Value
		if a.signalCount == 0 || v < a.signalMin {
			a.signalMin = v
		}
		if a.signalCount == 0 || v > a.signalMax {
			a.signalMax = v
		}
		a.signalCount++
		a.signalSum += int64(v)
	}
}

// AddError records a capture that failed to decode, classifying
// truncation separately.
func (a *Accumulator) AddError(err error) {
	a.errors++
	if errors.Is(err, radiotap.ErrTruncatedHeader) || errors.Is(err, radiotap.ErrTruncatedBody) {
		a.truncated++
	}
}

// Summary materializes the aggregated state.
func (a *Accumulator) Summary() *Summary {
	s := &Summary{
		GeneratedAt:     time.Now().UTC(),
		Source:          a.source,
		Frames:          a.frames,
		Bytes:           a.bytes,
		DecodeErrors:    a.errors,
		TruncatedFrames: a.truncated,
		FieldCounts:     make(map[string]int64),
		Channels:        make(map[string]int64),
		VendorOUIs:      make(map[string]int64),
	}
	for k, n := range a.fields {
		if n > 0 {
			s.FieldCounts[radiotap.FieldKind(k).String()] = n
		}
	}
	for freq, n := range a.channels {
		s.Channels[fmt.Sprintf("%d", freq)] = n
	}
	for oui, n := range a.vendors {
		s.VendorOUIs[oui] = n
	}
	if a.signalCount > 0 {
		s.Signal = &SignalStats{
			Count: a.signalCount,
			Min:   a.signalMin,
			Max:   a.signalMax,
			Mean:  float64(a.signalSum) / float64(a.signalCount),
		}
	}
	return s
}

// Digest returns a hex SHA-256 over the canonical JSON form of the
// summary, excluding the generation timestamp so equal runs hash
// equally.
func (s *Summary) Digest() (string, error) {
	clone := *s
	clone.GeneratedAt = time.Time{}
	data, err := json.Marshal(&clone)
	if err != nil {
		return "", err
	}
	h := common.NewHasher()
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return h.Sum(), nil
}
