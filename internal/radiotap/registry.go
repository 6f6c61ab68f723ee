package radiotap

import "fmt"

// FieldKind identifies one decodable field of the standard namespace.
type FieldKind uint8

const (
	FieldTSFT FieldKind = iota
	FieldFlags
	FieldRate
	FieldChannel
	FieldFHSS
	FieldAntennaSignal
	FieldAntennaNoise
	FieldLockQuality
	FieldTxAttenuation
	FieldTxAttenuationDB
	FieldTxPower
	FieldAntenna
	FieldAntennaSignalDB
	FieldAntennaNoiseDB
	FieldRxFlags
	FieldTxFlags
	FieldRTSRetries
	FieldDataRetries
	FieldXChannel
	FieldMCS
	FieldAMPDUStatus
	FieldVHT
	FieldTimestamp

	numFieldKinds
)

// NumFieldKinds is the number of identities in the registry.
const NumFieldKinds = int(numFieldKinds)

var fieldNames = [numFieldKinds]string{
	FieldTSFT:            "tsft",
	FieldFlags:           "flags",
	FieldRate:            "rate",
	FieldChannel:         "channel",
	FieldFHSS:            "fhss",
	FieldAntennaSignal:   "antenna-signal",
	FieldAntennaNoise:    "antenna-noise",
	FieldLockQuality:     "lock-quality",
	FieldTxAttenuation:   "tx-attenuation",
	FieldTxAttenuationDB: "tx-attenuation-db",
	FieldTxPower:         "tx-power",
	FieldAntenna:         "antenna",
	FieldAntennaSignalDB: "antenna-signal-db",
	FieldAntennaNoiseDB:  "antenna-noise-db",
	FieldRxFlags:         "rx-flags",
	FieldTxFlags:         "tx-flags",
	FieldRTSRetries:      "rts-retries",
	FieldDataRetries:     "data-retries",
	FieldXChannel:        "xchannel",
	FieldMCS:             "mcs",
	FieldAMPDUStatus:     "ampdu-status",
	FieldVHT:             "vht",
	FieldTimestamp:       "timestamp",
}

func (k FieldKind) String() string {
	if k < numFieldKinds {
		return fieldNames[k]
	}
	return fmt.Sprintf("field(%d)", uint8(k))
}

// FieldKindByName resolves the lowercase registry name of a field. It is
// the lookup used when a selection is configured from a file, so an
// unrecognized name fails here rather than during a parse.
func FieldKindByName(name string) (FieldKind, error) {
	for k, n := range fieldNames {
		if n == name {
			return FieldKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// AllFieldKinds returns every identity in the registry in bit order.
func AllFieldKinds() []FieldKind {
	out := make([]FieldKind, numFieldKinds)
	for i := range out {
		out[i] = FieldKind(i)
	}
	return out
}

// Namespace identifies the field-numbering context of a block.
type Namespace uint8

const (
	// NamespaceRadiotap is the standard namespace.
	NamespaceRadiotap Namespace = iota
	// NamespaceVendor covers OUI-tagged opaque blocks.
	NamespaceVendor
)

func (n Namespace) String() string {
	switch n {
	case NamespaceRadiotap:
		return "radiotap"
	case NamespaceVendor:
		return "vendor"
	default:
		return fmt.Sprintf("namespace(%d)", uint8(n))
	}
}

// FieldDescriptor describes the layout of one present bit in the
// standard namespace.
type FieldDescriptor struct {
	Kind  FieldKind
	Bit   uint8
	Size  int
	Align int
	// Known marks bits with a typed decoder. Width-known reserved bits
	// (HE and friends) are skipped via Size without materializing.
	Known bool
}

// fieldTable maps present-bit numbers 0-28 of the standard namespace to
// their layout. Bits 23-27 carry documented widths so unrecognized
// fields can be skipped without losing alignment; bit 28 opens the TLV
// area whose width cannot be resolved here, so its entry is zero and a
// capture using it fails with ErrMalformedHeader.
var fieldTable = [29]FieldDescriptor{
	0:  {Kind: FieldTSFT, Bit: 0, Size: 8, Align: 8, Known: true},
	1:  {Kind: FieldFlags, Bit: 1, Size: 1, Align: 1, Known: true},
	2:  {Kind: FieldRate, Bit: 2, Size: 1, Align: 1, Known: true},
	3:  {Kind: FieldChannel, Bit: 3, Size: 4, Align: 2, Known: true},
	4:  {Kind: FieldFHSS, Bit: 4, Size: 2, Align: 2, Known: true},
	5:  {Kind: FieldAntennaSignal, Bit: 5, Size: 1, Align: 1, Known: true},
	6:  {Kind: FieldAntennaNoise, Bit: 6, Size: 1, Align: 1, Known: true},
	7:  {Kind: FieldLockQuality, Bit: 7, Size: 2, Align: 2, Known: true},
	8:  {Kind: FieldTxAttenuation, Bit: 8, Size: 2, Align: 2, Known: true},
	9:  {Kind: FieldTxAttenuationDB, Bit: 9, Size: 2, Align: 2, Known: true},
	10: {Kind: FieldTxPower, Bit: 10, Size: 1, Align: 1, Known: true},
	11: {Kind: FieldAntenna, Bit: 11, Size: 1, Align: 1, Known: true},
	12: {Kind: FieldAntennaSignalDB, Bit: 12, Size: 1, Align: 1, Known: true},
	13: {Kind: FieldAntennaNoiseDB, Bit: 13, Size: 1, Align: 1, Known: true},
	14: {Kind: FieldRxFlags, Bit: 14, Size: 2, Align: 2, Known: true},
	15: {Kind: FieldTxFlags, Bit: 15, Size: 2, Align: 2, Known: true},
	16: {Kind: FieldRTSRetries, Bit: 16, Size: 1, Align: 1, Known: true},
	17: {Kind: FieldDataRetries, Bit: 17, Size: 1, Align: 1, Known: true},
	18: {Kind: FieldXChannel, Bit: 18, Size: 8, Align: 4, Known: true},
	19: {Kind: FieldMCS, Bit: 19, Size: 3, Align: 1, Known: true},
	20: {Kind: FieldAMPDUStatus, Bit: 20, Size: 8, Align: 4, Known: true},
	21: {Kind: FieldVHT, Bit: 21, Size: 12, Align: 2, Known: true},
	22: {Kind: FieldTimestamp, Bit: 22, Size: 12, Align: 8, Known: true},
	// HE, HE-MU, HE-MU-other-user, zero-length PSDU, L-SIG: widths per
	// the radiotap field registry, skipped without interpretation.
	23: {Bit: 23, Size: 12, Align: 2},
	24: {Bit: 24, Size: 12, Align: 2},
	25: {Bit: 25, Size: 6, Align: 2},
	26: {Bit: 26, Size: 1, Align: 1},
	27: {Bit: 27, Size: 4, Align: 2},
}

// Describe resolves a present-bit number of the standard namespace to
// its layout descriptor. The second return is false when the bit has no
// resolvable width.
func Describe(bit int) (FieldDescriptor, bool) {
	if bit < 0 || bit >= len(fieldTable) {
		return FieldDescriptor{}, false
	}
	desc := fieldTable[bit]
	if desc.Size == 0 {
		return FieldDescriptor{}, false
	}
	return desc, true
}
