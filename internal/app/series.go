package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var seriesHeader = []string{"step", "susceptible", "infected", "recovered"}

// SeriesWriter writes population samples as CSV rows.
type SeriesWriter struct {
	w   *csv.Writer
	row []string
}

// NewSeriesWriter writes the CSV header to w and returns a writer for samples.
func NewSeriesWriter(w io.Writer) (*SeriesWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return nil, fmt.Errorf("write series header: %w", err)
	}
	return &SeriesWriter{w: cw, row: make([]string, len(seriesHeader))}, nil
}

// Write appends one sample.
func (s *SeriesWriter) Write(sample Sample) error {
	s.row[0] = strconv.Itoa(sample.Step)
	s.row[1] = strconv.Itoa(sample.Susceptible)
	s.row[2] = strconv.Itoa(sample.Infected)
	s.row[3] = strconv.Itoa(sample.Recovered)
	if err := s.w.Write(s.row); err != nil {
		return fmt.Errorf("write series step %d: %w", sample.Step, err)
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (s *SeriesWriter) Flush() error {
	s.w.Flush()
	return s.w.Error()
}
