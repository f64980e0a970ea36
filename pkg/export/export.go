package export

import (
	"fmt"
	"io"
	"strings"
)

// Format names a supported export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts csv or pdf in any case; an empty value defaults to csv.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// Dataset defines tabular export content. Rows are positional and follow Headers.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Exporter writes a dataset to w in a single encoding.
type Exporter interface {
	Write(w io.Writer, data Dataset) error
	ContentType() string
	Extension() string
}

// For returns the exporter registered for format.
func For(format Format) (Exporter, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
