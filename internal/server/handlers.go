package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/gopacket"

	"example.com/rtapgate/internal/pcapio"
	"example.com/rtapgate/internal/radiotap"
	"example.com/rtapgate/internal/report"
	"example.com/rtapgate/internal/summary"
)

// DecodeRecord is one NDJSON line of a streaming decode response.
type DecodeRecord struct {
	Index        int64                      `json:"index"`
	Timestamp    time.Time                  `json:"timestamp"`
	Length       int                        `json:"length"`
	HeaderLength int                        `json:"headerLength,omitempty"`
	Fields       *radiotap.Fields           `json:"fields,omitempty"`
	Vendor       []radiotap.VendorNamespace `json:"vendor,omitempty"`
	Error        string                     `json:"error,omitempty"`
}

// handleDecode consumes a pcap stream from the request body and writes
// one NDJSON record per capture record. Decode failures are reported
// in-line and do not end the stream.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sel, err := selectorFromQuery(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("selection: %v", err), http.StatusBadRequest)
		return
	}
	reader, err := pcapio.NewReader(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, pcapio.ErrLinkType) {
			status = http.StatusUnsupportedMediaType
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	writer := NewNDJSONWriter(w)
	var index int64
	for {
		data, ci, err := reader.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			_ = writer.WriteObject(map[string]any{"error": fmt.Sprintf("read pcap: %v", err)})
			return
		}
		rec := s.decodeFrame(index, data, ci, sel)
		if err := writer.WriteRecord(rec); err != nil {
			return
		}
		index++
	}
}

func (s *Server) decodeFrame(index int64, data []byte, ci gopacket.CaptureInfo, sel *radiotap.Selector) DecodeRecord {
	rec := DecodeRecord{
		Index:     index,
		Timestamp: ci.Timestamp,
		Length:    ci.CaptureLength,
	}
	if len(data) > s.maxFrameBytes {
		s.metrics.IncDecodeError()
		rec.Error = fmt.Sprintf("frame of %d bytes exceeds limit %d", len(data), s.maxFrameBytes)
		return rec
	}
	capture, _, err := radiotap.Parse(data, sel)
	if err != nil {
		s.metrics.IncDecodeError()
		rec.Error = err.Error()
		return rec
	}
	s.metrics.AddFrame(int64(ci.CaptureLength))
	rec.HeaderLength = capture.ConsumedLength()
	rec.Fields = &capture.Fields
	if len(capture.Vendor) > 0 {
		rec.Vendor = capture.Vendor
	}
	return rec
}

// handleSummary consumes a pcap stream and returns the aggregated
// summary as one JSON document.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum, status, err := s.summarize(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleReport consumes a pcap stream, persists the summary as JSON and
// PDF artifacts and returns their references.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum, status, err := s.summarize(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	jsonPath, err := s.tempPath("summary-*.json")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := report.SaveSummaryJSON(sum, jsonPath); err != nil {
		http.Error(w, fmt.Sprintf("write summary: %v", err), http.StatusInternalServerError)
		return
	}
	jsonArt, err := s.addArtifact(jsonPath, "summary.json", "application/json", "summary")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pdfPath, err := s.tempPath("summary-*.pdf")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := report.SaveSummaryPDF(sum, pdfPath); err != nil {
		http.Error(w, fmt.Sprintf("render pdf: %v", err), http.StatusInternalServerError)
		return
	}
	pdfArt, err := s.addArtifact(pdfPath, "summary.pdf", "application/pdf", "report")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := struct {
		Summary   *summary.Summary `json:"summary"`
		Artifacts []ArtifactRef    `json:"artifacts"`
	}{
		Summary:   sum,
		Artifacts: []ArtifactRef{toRef(jsonArt), toRef(pdfArt)},
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) summarize(r *http.Request) (*summary.Summary, int, error) {
	sel, err := selectorFromQuery(r)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("selection: %w", err)
	}
	reader, err := pcapio.NewReader(r.Body)
	if err != nil {
		if errors.Is(err, pcapio.ErrLinkType) {
			return nil, http.StatusUnsupportedMediaType, err
		}
		return nil, http.StatusBadRequest, err
	}
	acc := summary.NewAccumulator(r.URL.Query().Get("source"))
	for {
		data, ci, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("read pcap: %w", err)
		}
		capture, _, err := radiotap.Parse(data, sel)
		if err != nil {
			s.metrics.IncDecodeError()
			acc.AddError(err)
			continue
		}
		s.metrics.AddFrame(int64(ci.CaptureLength))
		acc.AddCapture(capture, ci.CaptureLength)
	}
	return acc.Summary(), 0, nil
}

// handleFields lists the field registry.
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	type fieldInfo struct {
		Name  string `json:"name"`
		Bit   int    `json:"bit"`
		Size  int    `json:"size"`
		Align int    `json:"align"`
	}
	fields := make([]fieldInfo, 0, radiotap.NumFieldKinds)
	for _, k := range radiotap.AllFieldKinds() {
		desc, ok := radiotap.Describe(int(k))
		if !ok {
			continue
		}
		fields = append(fields, fieldInfo{
			Name:  k.String(),
			Bit:   int(desc.Bit),
			Size:  desc.Size,
			Align: desc.Align,
		})
	}
	writeJSON(w, http.StatusOK, struct {
		Fields []fieldInfo `json:"fields"`
	}{Fields: fields})
}

// handleArtifacts lists generated artifacts.
func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Artifacts []ArtifactRef `json:"artifacts"`
	}{Artifacts: s.listArtifacts()})
}

func (s *Server) handleArtifactDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/artifacts/")
	if id == "" {
		s.handleArtifacts(w, r)
		return
	}
	art, ok := s.getArtifact(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(art.Path)
	if err != nil {
		http.Error(w, fmt.Sprintf("open artifact: %v", err), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, fmt.Sprintf("stat artifact: %v", err), http.StatusInternalServerError)
		return
	}
	if art.ContentType != "" {
		w.Header().Set("Content-Type", art.ContentType)
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	disposition := fmt.Sprintf("attachment; filename=\"%s\"", art.Name)
	w.Header().Set("Content-Disposition", disposition)
	io.Copy(w, f)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	snap := s.metrics.Snapshot()
	writeJSON(w, http.StatusOK, struct {
		Status       string `json:"status"`
		Frames       int64  `json:"frames"`
		DecodeErrors int64  `json:"decodeErrors"`
	}{Status: "ok", Frames: snap.Frames, DecodeErrors: snap.DecodeErrors})
}
