// Package report defines the serialized result of a separation analysis.
//
// A [Report] combines the derived statistics of a run with enough context
// to interpret them: graph size, whether the graph was symmetric, how many
// ordered pairs were reachable at all, and how the run was configured.
// Reports are what the CLI renders, writes with --output, and stores in
// the result cache.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/degrees/pkg/stats"
)

// Report is the canonical serialization of one analysis run.
type Report struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	Input  string `json:"input,omitempty"`
	Digest string `json:"digest,omitempty"` // SHA-256 of the input bytes

	Nodes      int  `json:"nodes"`
	Edges      int  `json:"edges"`
	Symmetric  bool `json:"symmetric"`
	Undirected bool `json:"undirected"`

	// OrderedPairs is n(n-1), the number of ordered pairs of distinct nodes.
	OrderedPairs int64 `json:"ordered_pairs"`

	// Coverage is the percentage of ordered pairs that are reachable.
	// It is nil when the graph has fewer than two nodes.
	Coverage *float64 `json:"coverage"`

	Workers    int   `json:"workers"`
	DurationMS int64 `json:"duration_ms"`

	Stats stats.Summary `json:"stats"`
}

// Meta describes the input and configuration of a run.
type Meta struct {
	Input      string
	Digest     string
	Nodes      int
	Edges      int
	Symmetric  bool
	Undirected bool
	Workers    int
	Duration   time.Duration
	Threshold  int
}

// New builds a report from a finished accumulator.
func New(acc *stats.Accumulator, m Meta) *Report {
	n := int64(m.Nodes)
	r := &Report{
		RunID:        uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Input:        m.Input,
		Digest:       m.Digest,
		Nodes:        m.Nodes,
		Edges:        m.Edges,
		Symmetric:    m.Symmetric,
		Undirected:   m.Undirected,
		OrderedPairs: n * (n - 1),
		Workers:      m.Workers,
		DurationMS:   m.Duration.Milliseconds(),
		Stats:        acc.Summarize(m.Threshold),
	}
	if r.OrderedPairs > 0 {
		c := float64(acc.Count()) / float64(r.OrderedPairs) * 100
		r.Coverage = &c
	}
	return r
}

// Defined reports whether the statistics have any data behind them.
func (r *Report) Defined() bool { return r.Stats.Pairs > 0 }

// Marshal converts a report to indented JSON bytes.
func Marshal(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a report from JSON bytes.
func Unmarshal(data []byte) (*Report, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes r as indented JSON to w.
func Write(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON report from rd.
func Read(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &r, nil
}

// WriteFile writes r as JSON to path, creating or truncating the file.
func WriteFile(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeClose(r, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeClose encodes r to w and closes it. A failed close is reported,
// since buffered data may not have reached the file.
func writeClose(r *Report, w io.WriteCloser) error {
	if err := Write(r, w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
