// Package pcapio reads radiotap frames out of pcap capture files. It
// accepts only captures whose link type is IEEE 802.11 plus radiotap;
// everything past the link-type check is the caller's concern.
package pcapio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// ErrLinkType reports a capture whose frames do not start with a
// radiotap header.
var ErrLinkType = errors.New("capture link type is not 802.11 radiotap")

// Reader yields the raw records of one pcap stream in order.
type Reader struct {
	pr *pcapgo.Reader
}

// NewReader wraps a pcap stream and verifies its link type.
func NewReader(r io.Reader) (*Reader, error) {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read pcap header: %w", err)
	}
	if pr.LinkType() != layers.LinkTypeIEEE80211Radio {
		return nil, fmt.Errorf("%w: %v", ErrLinkType, pr.LinkType())
	}
	return &Reader{pr: pr}, nil
}

// Next returns the raw bytes and capture metadata of the next record.
// It returns io.EOF at the end of the stream.
func (r *Reader) Next() ([]byte, gopacket.CaptureInfo, error) {
	return r.pr.ReadPacketData()
}

// LinkType reports the capture's link type.
func (r *Reader) LinkType() layers.LinkType {
	return r.pr.LinkType()
}

// FileReader is a Reader over an opened capture file.
type FileReader struct {
	Reader
	f *os.File
}

// OpenFile opens a pcap file for reading.
func OpenFile(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileReader{Reader: *r, f: f}, nil
}

// Size reports the on-disk size of the capture file.
func (r *FileReader) Size() (int64, error) {
	stat, err := r.f.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

func (r *FileReader) Close() error {
	return r.f.Close()
}
