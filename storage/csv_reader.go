package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"vacancy-reporter/models"
)

// CSVReader reads an HH.ru vacancy export into raw rows keyed by header
// field name. The header must carry the full required schema; rows with
// fewer cells than the header are skipped, value-level validation is the
// normalizer's concern.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for the file at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadAll parses the whole file into raw rows.
func (r *CSVReader) ReadAll() ([]models.RawRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", r.path, err)
	}
	defer f.Close()

	return ParseRows(f)
}

// ParseRows parses CSV content from any reader. Split out of ReadAll so
// tests can feed strings directly.
func ParseRows(src io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %v", models.ErrMalformedInput, err)
	}
	if len(header) > 0 {
		// exports written as utf-8-sig carry a BOM on the first field
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	seen := make(map[string]int, len(header))
	for i, field := range header {
		seen[field] = i
	}
	for _, required := range models.RequiredFields {
		if _, ok := seen[required]; !ok {
			return nil, fmt.Errorf("%w: header is missing field %q", models.ErrMalformedInput, required)
		}
	}

	var rows []models.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrMalformedInput, err)
		}
		if len(record) < len(header) {
			continue
		}

		row := make(models.RawRow, len(header))
		for i, field := range header {
			row[field] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
