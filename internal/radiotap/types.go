package radiotap

// Header is the fixed radiotap preamble plus the present-word chain.
type Header struct {
	// Version is the radiotap version byte; only version 0 exists.
	Version uint8
	// Length is the total declared length of the header in bytes,
	// including the fixed preamble, the present words and all field
	// data. The 802.11 frame starts at this offset.
	Length int
	// Size is the number of bytes consumed by the preamble and the
	// present-word chain; field data begins here.
	Size int
	// Present holds the present words in wire order.
	Present []uint32
}

// VendorNamespace is an OUI-tagged opaque block embedded in a capture.
// Data borrows from the caller's buffer and is nil when vendor blocks
// are excluded from the selection.
type VendorNamespace struct {
	OUI          [3]byte
	SubNamespace uint8
	SkipLength   uint16
	Data         []byte
}

// Fields holds the decoded fields of one standard-namespace block. A
// nil pointer means the field was absent or excluded from the
// selection.
type Fields struct {
	TSFT            *TSFT
	Flags           *Flags
	Rate            *Rate
	Channel         *Channel
	FHSS            *FHSS
	AntennaSignal   *AntennaSignal
	AntennaNoise    *AntennaNoise
	LockQuality     *LockQuality
	TxAttenuation   *TxAttenuation
	TxAttenuationDB *TxAttenuationDB
	TxPower         *TxPower
	Antenna         *Antenna
	AntennaSignalDB *AntennaSignalDB
	AntennaNoiseDB  *AntennaNoiseDB
	RxFlags         *RxFlags
	TxFlags         *TxFlags
	RTSRetries      *RTSRetries
	DataRetries     *DataRetries
	XChannel        *XChannel
	MCS             *MCS
	AMPDUStatus     *AMPDUStatus
	VHT             *VHT
	Timestamp       *Timestamp
}

// Block is one decoded namespace segment of a capture.
type Block struct {
	Namespace Namespace
	// Fields is set for standard-namespace blocks.
	Fields *Fields
	// Vendor is set for vendor-namespace blocks.
	Vendor *VendorNamespace
}

// Capture is the merged result of decoding every namespace block of one
// radiotap header. When the same field appears in more than one
// standard block, the last occurrence wins, matching how chained
// captures override earlier values.
type Capture struct {
	Header Header
	Fields
	// Vendor collects every vendor block in wire order.
	Vendor []VendorNamespace
}

// Kinds lists the identities of the fields present on f, in bit order.
func (f *Fields) Kinds() []FieldKind {
	if f == nil {
		return nil
	}
	var kinds []FieldKind
	add := func(k FieldKind, present bool) {
		if present {
			kinds = append(kinds, k)
		}
	}
	add(FieldTSFT, f.TSFT != nil)
	add(FieldFlags, f.Flags != nil)
	add(FieldRate, f.Rate != nil)
	add(FieldChannel, f.Channel != nil)
	add(FieldFHSS, f.FHSS != nil)
	add(FieldAntennaSignal, f.AntennaSignal != nil)
	add(FieldAntennaNoise, f.AntennaNoise != nil)
	add(FieldLockQuality, f.LockQuality != nil)
	add(FieldTxAttenuation, f.TxAttenuation != nil)
	add(FieldTxAttenuationDB, f.TxAttenuationDB != nil)
	add(FieldTxPower, f.TxPower != nil)
	add(FieldAntenna, f.Antenna != nil)
	add(FieldAntennaSignalDB, f.AntennaSignalDB != nil)
	add(FieldAntennaNoiseDB, f.AntennaNoiseDB != nil)
	add(FieldRxFlags, f.RxFlags != nil)
	add(FieldTxFlags, f.TxFlags != nil)
	add(FieldRTSRetries, f.RTSRetries != nil)
	add(FieldDataRetries, f.DataRetries != nil)
	add(FieldXChannel, f.XChannel != nil)
	add(FieldMCS, f.MCS != nil)
	add(FieldAMPDUStatus, f.AMPDUStatus != nil)
	add(FieldVHT, f.VHT != nil)
	add(FieldTimestamp, f.Timestamp != nil)
	return kinds
}

// merge folds the fields of a later block over c.
func (c *Capture) merge(f *Fields) {
	if f == nil {
		return
	}
	if f.TSFT != nil {
		c.TSFT = f.TSFT
	}
	if f.Flags != nil {
		c.Flags = f.Flags
	}
	if f.Rate != nil {
		c.Rate = f.Rate
	}
	if f.Channel != nil {
		c.Channel = f.Channel
	}
	if f.FHSS != nil {
		c.FHSS = f.FHSS
	}
	if f.AntennaSignal != nil {
		c.AntennaSignal = f.AntennaSignal
	}
	if f.AntennaNoise != nil {
		c.AntennaNoise = f.AntennaNoise
	}
	if f.LockQuality != nil {
		c.LockQuality = f.LockQuality
	}
	if f.TxAttenuation != nil {
		c.TxAttenuation = f.TxAttenuation
	}
	if f.TxAttenuationDB != nil {
		c.TxAttenuationDB = f.TxAttenuationDB
	}
	if f.TxPower != nil {
		c.TxPower = f.TxPower
	}
	if f.Antenna != nil {
		c.Antenna = f.Antenna
	}
	if f.AntennaSignalDB != nil {
		c.AntennaSignalDB = f.AntennaSignalDB
	}
	if f.AntennaNoiseDB != nil {
		c.AntennaNoiseDB = f.AntennaNoiseDB
	}
	if f.RxFlags != nil {
		c.RxFlags = f.RxFlags
	}
	if f.TxFlags != nil {
		c.TxFlags = f.TxFlags
	}
	if f.RTSRetries != nil {
		c.RTSRetries = f.RTSRetries
	}
	if f.DataRetries != nil {
		c.DataRetries = f.DataRetries
	}
	if f.XChannel != nil {
		c.XChannel = f.XChannel
	}
	if f.MCS != nil {
		c.MCS = f.MCS
	}
	if f.AMPDUStatus != nil {
		c.AMPDUStatus = f.AMPDUStatus
	}
	if f.VHT != nil {
		c.VHT = f.VHT
	}
	if f.Timestamp != nil {
		c.Timestamp = f.Timestamp
	}
}
