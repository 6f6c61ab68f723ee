package radiotap

import "encoding/binary"

// Decoded field values. Every multi-byte quantity on the wire is
// little-endian. Decoding never fails: any bit pattern of the declared
// width is a legal value, so the functions below assume the walker has
// already verified the slice length.

// TSFT is the 64-bit MAC time synchronization function timer value, in
// microseconds, sampled when the first bit of the MPDU arrived.
type TSFT struct {
	Timestamp uint64
}

// Flags describes properties of the transmitted or received frame.
type Flags struct {
	CFP           bool
	ShortPreamble bool
	WEP           bool
	Fragmentation bool
	FCSAtEnd      bool
	DataPad       bool
	BadFCS        bool
	ShortGI       bool
}

// Rate is the legacy data rate in units of 500 Kbps. The raw encoding
// is kept as-is; unit conversion is out of scope here.
type Rate struct {
	Raw uint8
}

// ChannelFlags describes the channel a frame was sent or received on.
type ChannelFlags struct {
	Turbo   bool
	CCK     bool
	OFDM    bool
	GHz2    bool
	GHz5    bool
	Passive bool
	Dynamic bool
	GFSK    bool
}

// Channel is the tuned frequency in MHz plus channel flags.
type Channel struct {
	Frequency uint16
	Flags     ChannelFlags
}

// FHSS is the hop set and pattern for frequency-hopping radios.
type FHSS struct {
	HopSet  uint8
	Pattern uint8
}

// AntennaSignal is the RF signal power at the antenna in dBm.
type AntennaSignal struct {
	Value int8
}

// AntennaNoise is the RF noise power at the antenna in dBm.
type AntennaNoise struct {
	Value int8
}

// LockQuality is the unitless quality of the Barker code lock.
type LockQuality struct {
	Value uint16
}

// TxAttenuation is the transmit power as unitless distance from max.
type TxAttenuation struct {
	Value uint16
}

// TxAttenuationDB is the transmit power distance from max, in dB.
type TxAttenuationDB struct {
	Value uint16
}

// TxPower is the absolute transmit power in dBm at the antenna port.
type TxPower struct {
	Value int8
}

// Antenna is the zero-based antenna index for this frame.
type Antenna struct {
	Index uint8
}

// AntennaSignalDB is the RF signal power at the antenna in dB from an
// arbitrary fixed reference.
type AntennaSignalDB struct {
	Value uint8
}

// AntennaNoiseDB is the RF noise power at the antenna in dB from an
// arbitrary fixed reference.
type AntennaNoiseDB struct {
	Value uint8
}

// RxFlags describes properties of received frames.
type RxFlags struct {
	BadPLCP bool
}

// TxFlags describes properties of transmitted frames.
type TxFlags struct {
	Fail  bool
	CTS   bool
	RTS   bool
	NoACK bool
	NoSeq bool
}

// RTSRetries counts RTS retries of a transmitted frame.
type RTSRetries struct {
	Count uint8
}

// DataRetries counts data retries of a transmitted frame.
type DataRetries struct {
	Count uint8
}

// XChannelFlags is the extended channel flag word.
type XChannelFlags struct {
	Turbo   bool
	CCK     bool
	OFDM    bool
	GHz2    bool
	GHz5    bool
	Passive bool
	Dynamic bool
	GFSK    bool
	GSM     bool
	STurbo  bool
	Half    bool
	Quarter bool
	HT20    bool
	HT40U   bool
	HT40D   bool
}

// XChannel is the extended channel field.
type XChannel struct {
	Flags     XChannelFlags
	Frequency uint16
	Channel   uint8
	MaxPower  uint8
}

// MCS is the 802.11n modulation and coding scheme field. Known gates
// which of the decoded sub-fields carry meaning; the raw bytes are kept
// alongside.
type MCS struct {
	Known uint8
	Flags uint8
	Index uint8

	HaveBandwidth bool
	Bandwidth     uint8
	HaveIndex     bool
	HaveGI        bool
	ShortGI       bool
	HaveFormat    bool
	Greenfield    bool
	HaveFEC       bool
	LDPC          bool
	HaveSTBC      bool
	STBCStreams   uint8
	HaveNESS      bool
	NESS          uint8
}

// AMPDUStatus marks the frame as part of an A-MPDU.
type AMPDUStatus struct {
	Reference    uint32
	Flags        uint16
	DelimiterCRC uint8

	HasZeroLength   bool
	ZeroLength      bool
	HasLast         bool
	Last            bool
	HasDelimiterCRC bool
}

// VHTUser is one of the up to four users of a VHT group.
type VHTUser struct {
	Present bool
	Index   uint8
	NSS     uint8
	NSTS    uint8
	LDPC    bool
}

// VHT is the 802.11ac field.
type VHT struct {
	Known      uint16
	Flags      uint8
	Bandwidth  uint8
	MCSNSS     [4]uint8
	Coding     uint8
	GroupID    uint8
	PartialAID uint16

	HasSTBC       bool
	STBC          bool
	HasTXOPPS     bool
	TXOPPS        bool
	HasGI         bool
	ShortGI       bool
	HasSGINsymDA  bool
	SGINsymDA     bool
	HasLDPCExtra  bool
	LDPCExtra     bool
	HasBeamformed bool
	Beamformed    bool
	HasBandwidth  bool
	HasGroupID    bool
	HasPartialAID bool
	Users         [4]VHTUser
}

// Timestamp is the time the frame was transmitted or received.
type Timestamp struct {
	Value    uint64
	Accuracy uint16
	Unit     uint8
	Position uint8
	Flags    uint8

	HasAccuracy bool
}

func decodeTSFT(b []byte) *TSFT {
	return &TSFT{Timestamp: binary.LittleEndian.Uint64(b)}
}

func decodeFlags(b []byte) *Flags {
	v := b[0]
	return &Flags{
		CFP:           v&0x01 != 0,
		ShortPreamble: v&0x02 != 0,
		WEP:           v&0x04 != 0,
		Fragmentation: v&0x08 != 0,
		FCSAtEnd:      v&0x10 != 0,
		DataPad:       v&0x20 != 0,
		BadFCS:        v&0x40 != 0,
		ShortGI:       v&0x80 != 0,
	}
}

func decodeRate(b []byte) *Rate {
	return &Rate{Raw: b[0]}
}

func decodeChannelFlags(v uint16) ChannelFlags {
	return ChannelFlags{
		Turbo:   v&0x0010 != 0,
		CCK:     v&0x0020 != 0,
		OFDM:    v&0x0040 != 0,
		GHz2:    v&0x0080 != 0,
		GHz5:    v&0x0100 != 0,
		Passive: v&0x0200 != 0,
		Dynamic: v&0x0400 != 0,
		GFSK:    v&0x0800 != 0,
	}
}

func decodeChannel(b []byte) *Channel {
	return &Channel{
		Frequency: binary.LittleEndian.Uint16(b[0:2]),
		Flags:     decodeChannelFlags(binary.LittleEndian.Uint16(b[2:4])),
	}
}

func decodeFHSS(b []byte) *FHSS {
	return &FHSS{HopSet: b[0], Pattern: b[1]}
}

func decodeAntennaSignal(b []byte) *AntennaSignal {
	return &AntennaSignal{Value: int8(b[0])}
}

func decodeAntennaNoise(b []byte) *AntennaNoise {
	return &AntennaNoise{Value: int8(b[0])}
}

func decodeLockQuality(b []byte) *LockQuality {
	return &LockQuality{Value: binary.LittleEndian.Uint16(b)}
}

func decodeTxAttenuation(b []byte) *TxAttenuation {
	return &TxAttenuation{Value: binary.LittleEndian.Uint16(b)}
}

func decodeTxAttenuationDB(b []byte) *TxAttenuationDB {
	return &TxAttenuationDB{Value: binary.LittleEndian.Uint16(b)}
}

func decodeTxPower(b []byte) *TxPower {
	return &TxPower{Value: int8(b[0])}
}

func decodeAntenna(b []byte) *Antenna {
	return &Antenna{Index: b[0]}
}

func decodeAntennaSignalDB(b []byte) *AntennaSignalDB {
	return &AntennaSignalDB{Value: b[0]}
}

func decodeAntennaNoiseDB(b []byte) *AntennaNoiseDB {
	return &AntennaNoiseDB{Value: b[0]}
}

func decodeRxFlags(b []byte) *RxFlags {
	v := binary.LittleEndian.Uint16(b)
	return &RxFlags{BadPLCP: v&0x0002 != 0}
}

func decodeTxFlags(b []byte) *TxFlags {
	v := binary.LittleEndian.Uint16(b)
	return &TxFlags{
		Fail:  v&0x0001 != 0,
		CTS:   v&0x0002 != 0,
		RTS:   v&0x0004 != 0,
		NoACK: v&0x0008 != 0,
		NoSeq: v&0x0010 != 0,
	}
}

func decodeRTSRetries(b []byte) *RTSRetries {
	return &RTSRetries{Count: b[0]}
}

func decodeDataRetries(b []byte) *DataRetries {
	return &DataRetries{Count: b[0]}
}

func decodeXChannel(b []byte) *XChannel {
	v := binary.LittleEndian.Uint32(b[0:4])
	return &XChannel{
		Flags: XChannelFlags{
			Turbo:   v&0x00000010 != 0,
			CCK:     v&0x00000020 != 0,
			OFDM:    v&0x00000040 != 0,
			GHz2:    v&0x00000080 != 0,
			GHz5:    v&0x00000100 != 0,
			Passive: v&0x00000200 != 0,
			Dynamic: v&0x00000400 != 0,
			GFSK:    v&0x00000800 != 0,
			GSM:     v&0x00001000 != 0,
			STurbo:  v&0x00002000 != 0,
			Half:    v&0x00004000 != 0,
			Quarter: v&0x00008000 != 0,
			HT20:    v&0x00010000 != 0,
			HT40U:   v&0x00020000 != 0,
			HT40D:   v&0x00040000 != 0,
		},
		Frequency: binary.LittleEndian.Uint16(b[4:6]),
		Channel:   b[6],
		MaxPower:  b[7],
	}
}

func decodeMCS(b []byte) *MCS {
	known, flags, index := b[0], b[1], b[2]
	mcs := &MCS{Known: known, Flags: flags, Index: index}
	if known&0x01 != 0 {
		mcs.HaveBandwidth = true
		mcs.Bandwidth = flags & 0x03
	}
	if known&0x02 != 0 {
		mcs.HaveIndex = true
	}
	if known&0x04 != 0 {
		mcs.HaveGI = true
		mcs.ShortGI = flags&0x04 != 0
	}
	if known&0x08 != 0 {
		mcs.HaveFormat = true
		mcs.Greenfield = flags&0x08 != 0
	}
	if known&0x10 != 0 {
		mcs.HaveFEC = true
		mcs.LDPC = flags&0x10 != 0
	}
	if known&0x20 != 0 {
		mcs.HaveSTBC = true
		mcs.STBCStreams = (flags >> 5) & 0x03
	}
	if known&0x40 != 0 {
		mcs.HaveNESS = true
		mcs.NESS = (known&0x80)>>6 | (flags&0x80)>>7
	}
	return mcs
}

func decodeAMPDUStatus(b []byte) *AMPDUStatus {
	st := &AMPDUStatus{
		Reference:    binary.LittleEndian.Uint32(b[0:4]),
		Flags:        binary.LittleEndian.Uint16(b[4:6]),
		DelimiterCRC: b[6],
	}
	if st.Flags&0x0001 != 0 {
		st.HasZeroLength = true
		st.ZeroLength = st.Flags&0x0002 != 0
	}
	if st.Flags&0x0004 != 0 {
		st.HasLast = true
		st.Last = st.Flags&0x0008 != 0
	}
	if st.Flags&0x0010 == 0 && st.Flags&0x0020 != 0 {
		st.HasDelimiterCRC = true
	}
	return st
}

func decodeVHT(b []byte) *VHT {
	vht := &VHT{
		Known:      binary.LittleEndian.Uint16(b[0:2]),
		Flags:      b[2],
		Bandwidth:  b[3],
		Coding:     b[8],
		GroupID:    b[9],
		PartialAID: binary.LittleEndian.Uint16(b[10:12]),
	}
	copy(vht.MCSNSS[:], b[4:8])

	if vht.Known&0x0001 != 0 {
		vht.HasSTBC = true
		vht.STBC = vht.Flags&0x01 != 0
	}
	if vht.Known&0x0002 != 0 {
		vht.HasTXOPPS = true
		vht.TXOPPS = vht.Flags&0x02 != 0
	}
	if vht.Known&0x0004 != 0 {
		vht.HasGI = true
		vht.ShortGI = vht.Flags&0x04 != 0
	}
	if vht.Known&0x0008 != 0 {
		vht.HasSGINsymDA = true
		vht.SGINsymDA = vht.Flags&0x08 != 0
	}
	if vht.Known&0x0010 != 0 {
		vht.HasLDPCExtra = true
		vht.LDPCExtra = vht.Flags&0x10 != 0
	}
	if vht.Known&0x0020 != 0 {
		vht.HasBeamformed = true
		vht.Beamformed = vht.Flags&0x20 != 0
	}
	if vht.Known&0x0040 != 0 {
		vht.HasBandwidth = true
	}
	if vht.Known&0x0080 != 0 {
		vht.HasGroupID = true
	}
	if vht.Known&0x0100 != 0 {
		vht.HasPartialAID = true
	}

	for i, mn := range vht.MCSNSS {
		nss := mn & 0x0f
		if nss == 0 {
			continue
		}
		vht.Users[i] = VHTUser{
			Present: true,
			Index:   (mn >> 4) & 0x0f,
			NSS:     nss,
			NSTS:    nss << (vht.Flags & 0x01),
			LDPC:    vht.Coding&(1<<uint(i)) != 0,
		}
	}
	return vht
}

func decodeTimestamp(b []byte) *Timestamp {
	unitPos := b[10]
	ts := &Timestamp{
		Value:    binary.LittleEndian.Uint64(b[0:8]),
		Accuracy: binary.LittleEndian.Uint16(b[8:10]),
		Unit:     unitPos & 0x0f,
		Position: (unitPos & 0xf0) >> 4,
		Flags:    b[11],
	}
	ts.HasAccuracy = ts.Flags&0x02 != 0
	return ts
}

// assign decodes one raw field slice into its slot on f.
func (f *Fields) assign(kind FieldKind, raw []byte) {
	switch kind {
	case FieldTSFT:
		f.TSFT = decodeTSFT(raw)
	case FieldFlags:
		f.Flags = decodeFlags(raw)
	case FieldRate:
		f.Rate = decodeRate(raw)
	case FieldChannel:
		f.Channel = decodeChannel(raw)
	case FieldFHSS:
		f.FHSS = decodeFHSS(raw)
	case FieldAntennaSignal:
		f.AntennaSignal = decodeAntennaSignal(raw)
	case FieldAntennaNoise:
		f.AntennaNoise = decodeAntennaNoise(raw)
	case FieldLockQuality:
		f.LockQuality = decodeLockQuality(raw)
	case FieldTxAttenuation:
		f.TxAttenuation = decodeTxAttenuation(raw)
	case FieldTxAttenuationDB:
		f.TxAttenuationDB = decodeTxAttenuationDB(raw)
	case FieldTxPower:
		f.TxPower = decodeTxPower(raw)
	case FieldAntenna:
		f.Antenna = decodeAntenna(raw)
	case FieldAntennaSignalDB:
		f.AntennaSignalDB = decodeAntennaSignalDB(raw)
	case FieldAntennaNoiseDB:
		f.AntennaNoiseDB = decodeAntennaNoiseDB(raw)
	case FieldRxFlags:
		f.RxFlags = decodeRxFlags(raw)
	case FieldTxFlags:
		f.TxFlags = decodeTxFlags(raw)
	case FieldRTSRetries:
		f.RTSRetries = decodeRTSRetries(raw)
	case FieldDataRetries:
		f.DataRetries = decodeDataRetries(raw)
	case FieldXChannel:
		f.XChannel = decodeXChannel(raw)
	case FieldMCS:
		f.MCS = decodeMCS(raw)
	case FieldAMPDUStatus:
		f.AMPDUStatus = decodeAMPDUStatus(raw)
	case FieldVHT:
		f.VHT = decodeVHT(raw)
	case FieldTimestamp:
		f.Timestamp = decodeTimestamp(raw)
	}
}
