package report

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"example.com/rtapgate/internal/common"
	"example.com/rtapgate/internal/summary"
)

// SaveSummaryPDF renders a capture summary into a PDF document. The
// summary digest is embedded as a QR code so a printed page can be tied
// back to the exact run.
func SaveSummaryPDF(s *summary.Summary, out string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Capture Summary", false)
	pdf.SetAuthor("rtapctl", false)
	pdf.SetCreator("rtapctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, "Capture Summary")
	addOverviewSection(pdf, s)
	addFieldSection(pdf, s.FieldCounts, s.Frames)
	addChannelSection(pdf, s.Channels)
	addVendorSection(pdf, s.VendorOUIs)
	if err := addDigestSection(pdf, s); err != nil {
		return err
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addOverviewSection(pdf *gofpdf.Fpdf, s *summary.Summary) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Overview")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: "Source", value: emptyFallback(s.Source, "-")},
		{label: "Source Digest", value: emptyFallback(s.SourceDigest, "-")},
		{label: "Generated", value: s.GeneratedAt.Format(time.RFC3339)},
		{label: "Frames", value: strconv.FormatInt(s.Frames, 10)},
		{label: "Bytes", value: common.FormatBytes(s.Bytes)},
		{label: "Decode Errors", value: strconv.FormatInt(s.DecodeErrors, 10)},
		{label: "Truncated Frames", value: strconv.FormatInt(s.TruncatedFrames, 10)},
	}
	if s.Signal != nil {
		items = append(items, struct {
			label string
			value string
		}{
			label: "Antenna Signal",
			value: fmt.Sprintf("min %d dBm / mean %.1f dBm / max %d dBm", s.Signal.Min, s.Signal.Mean, s.Signal.Max),
		})
	}
	for _, item := range items {
		pdf.CellFormat(50, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addFieldSection(pdf *gofpdf.Fpdf, counts map[string]int64, frames int64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Field Presence")
	pdf.Ln(9)

	if len(counts) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No fields decoded.", "", "L", false)
		pdf.Ln(4)
		return
	}

	headers := []string{"Field", "Frames", "Share"}
	widths := []float64{70, 30, 30}
	renderTableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, name := range sortedKeys(counts) {
		share := "-"
		if frames > 0 {
			share = fmt.Sprintf("%.1f%%", 100*float64(counts[name])/float64(frames))
		}
		renderTableRow(pdf, widths, []string{name, strconv.FormatInt(counts[name], 10), share}, 5.0)
	}
	pdf.Ln(4)
}

func addChannelSection(pdf *gofpdf.Fpdf, channels map[string]int64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Channels")
	pdf.Ln(9)

	if len(channels) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No channel fields seen.", "", "L", false)
		pdf.Ln(4)
		return
	}

	headers := []string{"Frequency (MHz)", "Frames"}
	widths := []float64{50, 30}
	renderTableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, freq := range sortedKeys(channels) {
		renderTableRow(pdf, widths, []string{freq, strconv.FormatInt(channels[freq], 10)}, 5.0)
	}
	pdf.Ln(4)
}

func addVendorSection(pdf *gofpdf.Fpdf, vendors map[string]int64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Vendor Namespaces")
	pdf.Ln(9)

	if len(vendors) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No vendor namespaces seen.", "", "L", false)
		pdf.Ln(4)
		return
	}

	headers := []string{"OUI", "Blocks"}
	widths := []float64{50, 30}
	renderTableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, oui := range sortedKeys(vendors) {
		renderTableRow(pdf, widths, []string{oui, strconv.FormatInt(vendors[oui], 10)}, 5.0)
	}
	pdf.Ln(4)
}

func addDigestSection(pdf *gofpdf.Fpdf, s *summary.Summary) error {
	digest, err := s.Digest()
	if err != nil {
		return err
	}
	png, err := DigestToQR(digest, 256)
	if err != nil {
		return err
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Digest")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4, digest, "", "L", false)
	pdf.Ln(2)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("summary-digest-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("summary-digest-qr", pdf.GetX(), pdf.GetY(), 35, 35, false, opts, 0, "")
	pdf.Ln(38)
	return nil
}

func renderTableHeader(pdf *gofpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func renderTableRow(pdf *gofpdf.Fpdf, widths []float64, values []string, lineHeight float64) {
	xStart := pdf.GetX()
	yStart := pdf.GetY()
	maxLines := 1
	splitCols := make([][]string, len(values))
	for i, val := range values {
		text := strings.TrimSpace(val)
		if text == "" {
			text = "-"
		}
		lines := pdf.SplitText(text, widths[i]-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		splitCols[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rowHeight := float64(maxLines) * lineHeight
	x := xStart
	for i, lines := range splitCols {
		pdf.SetXY(x, yStart)
		cellText := strings.Join(lines, "\n")
		pdf.MultiCell(widths[i], lineHeight, cellText, "1", "L", false)
		x += widths[i]
	}
	pdf.SetXY(xStart, yStart+rowHeight)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
