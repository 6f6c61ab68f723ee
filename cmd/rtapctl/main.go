package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"example.com/rtapgate/internal/common"
	"example.com/rtapgate/internal/pcapio"
	"example.com/rtapgate/internal/radiotap"
	"example.com/rtapgate/internal/report"
	"example.com/rtapgate/internal/server"
	"example.com/rtapgate/internal/summary"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]
	switch cmd {
	case "decode":
		decodeCmd(os.Args[2:])
	case "summary":
		summaryCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "fields":
		fieldsCmd(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Printf(`rtapctl %s (built %s) <command> [options]

Commands:
  decode   --in <capture.pcap> [--out <records.ndjson>] [--select <selection.yaml> | --include <names> --exclude <names>] [--metrics] [--progress]
  summary  --in <capture.pcap> [--out <summary.json>] [--select <selection.yaml>]
  report   --in <capture.pcap> [--json <summary.json>] --pdf <summary.pdf>
  fields
`, version, buildDate)
}

// selectionFile is the YAML form of a field selection.
type selectionFile struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

func loadSelection(path, include, exclude string) (*radiotap.Selector, error) {
	var inc, exc []string
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read selection: %w", err)
		}
		var sel selectionFile
		if err := yaml.Unmarshal(data, &sel); err != nil {
			return nil, fmt.Errorf("parse selection: %w", err)
		}
		inc, exc = sel.Include, sel.Exclude
	}
	inc = append(inc, splitNames(include)...)
	exc = append(exc, splitNames(exclude)...)
	if len(inc) == 0 && len(exc) == 0 {
		return nil, nil
	}
	return radiotap.NewSelectorFromNames(inc, exc)
}

func splitNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func decodeCmd(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "input .pcap")
	out := fs.String("out", "-", "NDJSON output, - for stdout")
	selPath := fs.String("select", "", "selection YAML file")
	include := fs.String("include", "", "comma-separated fields to include")
	exclude := fs.String("exclude", "", "comma-separated fields to exclude")
	metricsFlag := fs.Bool("metrics", false, "print decode throughput metrics")
	progressFlag := fs.Bool("progress", false, "display decode progress updates")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	sel, err := loadSelection(*selPath, *include, *exclude)
	if err != nil {
		common.Fatalf("selection: %v", err)
	}
	reader, err := pcapio.OpenFile(*in)
	if err != nil {
		common.Fatalf("open capture: %v", err)
	}
	defer reader.Close()

	dest, err := openOutput(*out)
	if err != nil {
		common.Fatalf("open output: %v", err)
	}
	if dest != os.Stdout {
		defer dest.Close()
	}

	var metrics *common.Metrics
	if *metricsFlag || *progressFlag {
		metrics = common.NewMetrics()
		if size, err := reader.Size(); err == nil {
			metrics.SetTotalBytes(size)
		}
		metrics.Start()
	}
	var stopProgress func()
	if *progressFlag {
		stopProgress = common.StartProgressPrinter(os.Stderr, metrics, time.Second)
	}

	enc := json.NewEncoder(dest)
	var index int64
	for {
		data, ci, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			common.Fatalf("read capture: %v", err)
		}
		rec := server.DecodeRecord{
			Index:     index,
			Timestamp: ci.Timestamp,
			Length:    ci.CaptureLength,
		}
		capture, _, derr := radiotap.Parse(data, sel)
		if derr != nil {
			rec.Error = derr.Error()
			if metrics != nil {
				metrics.IncDecodeError()
			}
		} else {
			rec.HeaderLength = capture.ConsumedLength()
			rec.Fields = &capture.Fields
			if len(capture.Vendor) > 0 {
				rec.Vendor = capture.Vendor
			}
			if metrics != nil {
				metrics.AddFrame(int64(ci.CaptureLength))
			}
		}
		if err := enc.Encode(rec); err != nil {
			common.Fatalf("write record: %v", err)
		}
		index++
	}

	if stopProgress != nil {
		stopProgress()
	}
	if metrics != nil {
		metrics.Stop()
		snap := metrics.Snapshot()
		if *metricsFlag {
			fmt.Fprintf(os.Stderr, "decoded %d frames (%s) in %s, %d errors\n",
				snap.Frames, common.FormatBytes(snap.Bytes), snap.Duration.Round(time.Millisecond), snap.DecodeErrors)
		}
	}
}

func summarizeFile(in string, sel *radiotap.Selector) (*summary.Summary, error) {
	reader, err := pcapio.OpenFile(in)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer reader.Close()

	acc := summary.NewAccumulator(in)
	for {
		data, ci, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read capture: %w", err)
		}
		capture, _, derr := radiotap.Parse(data, sel)
		if derr != nil {
			acc.AddError(derr)
			continue
		}
		acc.AddCapture(capture, ci.CaptureLength)
	}
	sum := acc.Summary()
	digest, _, err := common.Sha256OfFile(in)
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}
	sum.SourceDigest = digest
	return sum, nil
}

func summaryCmd(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	in := fs.String("in", "", "input .pcap")
	out := fs.String("out", "-", "summary JSON output, - for stdout")
	selPath := fs.String("select", "", "selection YAML file")
	include := fs.String("include", "", "comma-separated fields to include")
	exclude := fs.String("exclude", "", "comma-separated fields to exclude")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	sel, err := loadSelection(*selPath, *include, *exclude)
	if err != nil {
		common.Fatalf("selection: %v", err)
	}
	sum, err := summarizeFile(*in, sel)
	if err != nil {
		common.Fatalf("%v", err)
	}
	if *out == "" || *out == "-" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			common.Fatalf("write summary: %v", err)
		}
		return
	}
	if err := report.SaveSummaryJSON(sum, *out); err != nil {
		common.Fatalf("write summary: %v", err)
	}
	common.Logf("summary written to %s", *out)
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	in := fs.String("in", "", "input .pcap")
	jsonOut := fs.String("json", "", "also write the summary JSON here")
	pdfOut := fs.String("pdf", "summary.pdf", "PDF output")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	sum, err := summarizeFile(*in, nil)
	if err != nil {
		common.Fatalf("%v", err)
	}
	if *jsonOut != "" {
		if err := report.SaveSummaryJSON(sum, *jsonOut); err != nil {
			common.Fatalf("write summary: %v", err)
		}
	}
	if err := report.SaveSummaryPDF(sum, *pdfOut); err != nil {
		common.Fatalf("render pdf: %v", err)
	}
	common.Logf("report written to %s", *pdfOut)
}

func fieldsCmd(args []string) {
	fs := flag.NewFlagSet("fields", flag.ExitOnError)
	fs.Parse(args)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BIT\tNAME\tSIZE\tALIGN")
	for _, k := range radiotap.AllFieldKinds() {
		desc, ok := radiotap.Describe(int(k))
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", desc.Bit, k, desc.Size, desc.Align)
	}
	w.Flush()
}
