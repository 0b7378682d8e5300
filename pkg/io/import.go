package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"

	pkgerrors "github.com/matzehuels/degrees/pkg/errors"
	"github.com/matzehuels/degrees/pkg/graph"
)

// ReadOptions controls how an edge list is parsed.
type ReadOptions struct {
	// Delimiter separates the two fields of a line. Zero means ','.
	Delimiter rune

	// Header reports whether the first line is a header to skip.
	Header bool

	// Undirected adds target→source for every source→target line.
	Undirected bool
}

// DefaultReadOptions matches the usual "node_1,node_2" export: comma
// separated, with a header line, edges kept as directed.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Delimiter: ',', Header: true}
}

// EdgeList is a parsed edge list with labels mapped to dense node ids.
//
// Ids are assigned in order of first appearance, the source label of a
// line before its target, so Labels[id] recovers the original label.
type EdgeList struct {
	Labels    []string
	Adjacency [][]int
	Lines     int // data lines read, header excluded

	index map[string]int
}

// ID returns the dense id for label.
func (e *EdgeList) ID(label string) (int, bool) {
	id, ok := e.index[label]
	return id, ok
}

// Graph builds the immutable graph for this edge list.
func (e *EdgeList) Graph() *graph.Graph {
	return graph.New(e.Adjacency)
}

// edgeRecord is one decoded line.
type edgeRecord struct {
	Source string `csv:"source"`
	Target string `csv:"target"`
}

// ReadEdgeList parses a delimited edge list from r.
//
// Every data line must hold exactly two non-empty fields. Blank lines are
// skipped. Malformed input returns an error with code INVALID_FORMAT that
// names the offending line.
//
// ReadEdgeList does not close r.
func ReadEdgeList(r io.Reader, opts ReadOptions) (*EdgeList, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	if cr.Comma == 0 {
		cr.Comma = ','
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if opts.Header {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return newEdgeList(), nil
			}
			return nil, formatError(err)
		}
	}

	rr := &recordReader{r: cr}
	dec, err := csvutil.NewDecoder(rr, "source", "target")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "create decoder")
	}

	el := newEdgeList()
	for {
		var rec edgeRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, formatError(err)
		}

		src, dst := strings.TrimSpace(rec.Source), strings.TrimSpace(rec.Target)
		if src == "" || dst == "" {
			return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "line %d: empty node label", rr.line)
		}

		a, b := el.intern(src), el.intern(dst)
		el.Adjacency[a] = append(el.Adjacency[a], b)
		if opts.Undirected {
			el.Adjacency[b] = append(el.Adjacency[b], a)
		}
		el.Lines++
	}

	return el, nil
}

// ImportEdgeList reads the edge list file at path.
//
// A missing file returns an error with code FILE_NOT_FOUND; parse errors
// are the same as for [ReadEdgeList].
func ImportEdgeList(path string, opts ReadOptions) (*EdgeList, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEdgeList(f, opts)
}

func newEdgeList() *EdgeList {
	return &EdgeList{index: make(map[string]int)}
}

func (e *EdgeList) intern(label string) int {
	if id, ok := e.index[label]; ok {
		return id
	}
	id := len(e.Labels)
	e.index[label] = id
	e.Labels = append(e.Labels, label)
	e.Adjacency = append(e.Adjacency, nil)
	return id
}

// recordReader feeds csvutil and rejects lines without exactly two fields,
// remembering the line number of the last record for error messages.
type recordReader struct {
	r    *csv.Reader
	line int
}

func (rr *recordReader) Read() ([]string, error) {
	rec, err := rr.r.Read()
	if err != nil {
		return nil, err
	}
	rr.line, _ = rr.r.FieldPos(0)
	if len(rec) != 2 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidFormat, "line %d: expected 2 fields, got %d", rr.line, len(rec))
	}
	return rec, nil
}

// formatError tags CSV syntax errors as INVALID_FORMAT and passes coded
// errors through unchanged.
func formatError(err error) error {
	if pkgerrors.GetCode(err) != "" {
		return err
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidFormat, err, "line %d: malformed record", pe.Line)
	}
	return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidFormat, err, "read edge list")
}
