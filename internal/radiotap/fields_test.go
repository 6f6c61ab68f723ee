package radiotap

import "testing"

func TestDecodeMCS(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want MCS
	}{
		{
			name: "nothing known",
			raw:  []byte{0x00, 0xff, 7},
			want: MCS{Known: 0x00, Flags: 0xff, Index: 7},
		},
		{
			name: "bandwidth and index",
			raw:  []byte{0x03, 0x02, 7},
			want: MCS{
				Known: 0x03, Flags: 0x02, Index: 7,
				HaveBandwidth: true, Bandwidth: 2,
				HaveIndex: true,
			},
		},
		{
			name: "guard interval and format",
			raw:  []byte{0x0c, 0x0c, 0},
			want: MCS{
				Known: 0x0c, Flags: 0x0c,
				HaveGI: true, ShortGI: true,
				HaveFormat: true, Greenfield: true,
			},
		},
		{
			name: "fec and stbc",
			raw:  []byte{0x30, 0x50, 0},
			want: MCS{
				Known: 0x30, Flags: 0x50,
				HaveFEC: true, LDPC: true,
				HaveSTBC: true, STBCStreams: 2,
			},
		},
		{
			// NESS is split across the high bits of known and flags.
			name: "ness from both bytes",
			raw:  []byte{0xc0, 0x80, 0},
			want: MCS{
				Known: 0xc0, Flags: 0x80,
				HaveNESS: true, NESS: 3,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeMCS(tc.raw)
			if *got != tc.want {
				t.Fatalf("decodeMCS(%x) = %+v, want %+v", tc.raw, *got, tc.want)
			}
		})
	}
}

func TestDecodeAMPDUStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want AMPDUStatus
	}{
		{
			name: "reference only",
			raw:  []byte{0xf9, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want: AMPDUStatus{Reference: 505},
		},
		{
			name: "zero length and last",
			raw:  []byte{0x01, 0x00, 0x00, 0x00, 0x0f, 0x00, 0x00, 0x00},
			want: AMPDUStatus{
				Reference: 1, Flags: 0x000f,
				HasZeroLength: true, ZeroLength: true,
				HasLast: true, Last: true,
			},
		},
		{
			// CRC is meaningful only when flagged known and not in
			// error.
			name: "delimiter crc known",
			raw:  []byte{0x00, 0x00, 0x00, 0x00, 0x20, 0x00, 0xab, 0x00},
			want: AMPDUStatus{
				Flags: 0x0020, DelimiterCRC: 0xab,
				HasDelimiterCRC: true,
			},
		},
		{
			name: "delimiter crc in error",
			raw:  []byte{0x00, 0x00, 0x00, 0x00, 0x30, 0x00, 0xab, 0x00},
			want: AMPDUStatus{Flags: 0x0030, DelimiterCRC: 0xab},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeAMPDUStatus(tc.raw)
			if *got != tc.want {
				t.Fatalf("decodeAMPDUStatus(%x) = %+v, want %+v", tc.raw, *got, tc.want)
			}
		})
	}
}

func TestDecodeVHTUsers(t *testing.T) {
	raw := []byte{
		0x05, 0x00, // known: stbc, gi
		0x05,       // flags: stbc, short gi
		0x01,       // bandwidth
		0x73, 0x42, 0x00, 0x00, // users 0 and 1
		0x02,       // coding: user 1 ldpc
		0x3f,       // group
		0x11, 0x00, // partial aid
	}
	vht := decodeVHT(raw)
	if !vht.HasSTBC || !vht.STBC || !vht.HasGI || !vht.ShortGI {
		t.Fatalf("vht gating = %+v", vht)
	}
	if vht.HasBandwidth {
		t.Fatal("bandwidth marked known without its bit")
	}
	u0 := vht.Users[0]
	// flags bit 0 doubles NSTS relative to NSS.
	if !u0.Present || u0.NSS != 3 || u0.Index != 7 || u0.NSTS != 6 || u0.LDPC {
		t.Fatalf("user 0 = %+v", u0)
	}
	u1 := vht.Users[1]
	if !u1.Present || u1.NSS != 2 || u1.Index != 4 || u1.NSTS != 4 || !u1.LDPC {
		t.Fatalf("user 1 = %+v", u1)
	}
	if vht.Users[2].Present || vht.Users[3].Present {
		t.Fatalf("phantom users: %+v", vht.Users)
	}
}

func TestDecodeTimestamp(t *testing.T) {
	raw := []byte{
		0x10, 0x32, 0x54, 0x76, 0x98, 0xba, 0xdc, 0xfe,
		0x64, 0x00, // accuracy 100
		0x31,       // position 3, unit 1
		0x02,       // accuracy known
	}
	ts := decodeTimestamp(raw)
	if ts.Value != 0xfedcba9876543210 {
		t.Fatalf("value = %#x", ts.Value)
	}
	if !ts.HasAccuracy || ts.Accuracy != 100 {
		t.Fatalf("accuracy = %+v", ts)
	}
	if ts.Unit != 1 || ts.Position != 3 {
		t.Fatalf("unit/position = %d/%d", ts.Unit, ts.Position)
	}

	ts = decodeTimestamp([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0x64, 0x00, 0x00, 0x00})
	if ts.HasAccuracy {
		t.Fatal("accuracy marked known without its flag bit")
	}
}

func TestDecodeTxFlags(t *testing.T) {
	flags := decodeTxFlags([]byte{0x09, 0x00})
	if !flags.Fail || !flags.NoACK || flags.CTS || flags.RTS || flags.NoSeq {
		t.Fatalf("tx flags = %+v", flags)
	}
}

func TestDecodeXChannel(t *testing.T) {
	x := decodeXChannel([]byte{0x40, 0x48, 0x00, 0x00, 0x7c, 0x15, 0x64, 0x22})
	if !x.Flags.OFDM || !x.Flags.GFSK || !x.Flags.Half || x.Flags.HT20 {
		t.Fatalf("xchannel flags = %+v", x.Flags)
	}
	if x.Frequency != 5500 || x.Channel != 100 || x.MaxPower != 34 {
		t.Fatalf("xchannel = %+v", x)
	}
}
