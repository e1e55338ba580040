// Package ioformat implements the §6 file-format boundary: the
// line-oriented NFA text format is parsed here and turned into an
// automaton.Automaton. Per spec.md §1 this is an out-of-scope external
// collaborator with respect to the algorithmic core — the core never
// sees malformed input — but it is still the boundary contract a
// working CLI needs, so it lives in its own package rather than inside
// `automaton`.
//
// Modelled on the teacher's only textual-I/O idiom, main.go's
// bufio.NewReader/ReadString line loop, generalised to a small
// line-source that skips %-comments and blank lines for header fields
// while treating a blank line (or an "Initial state" marker) as the
// transitions block's terminator, per spec.md §6.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rfielding/diagctl/alphabet"
	"github.com/rfielding/diagctl/automaton"
)

// ReadFile opens path and parses it as an NFA description.
func ReadFile(path string) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an NFA description from r per spec.md §6's eight-field
// format.
func Parse(r io.Reader) (*automaton.Automaton, error) {
	src := newLineSource(r)

	n, err := parseStateCount(src)
	if err != nil {
		return nil, err
	}

	alphabetLine, ok := src.nextLogical()
	if !ok {
		return nil, fmt.Errorf("invalid transition line: missing alphabet line")
	}
	tbl, err := alphabet.New(strings.Fields(alphabetLine))
	if err != nil {
		return nil, err
	}

	observable, err := readSymbolSet(src, tbl)
	if err != nil {
		return nil, err
	}
	unobservable, err := readSymbolSet(src, tbl)
	if err != nil {
		return nil, err
	}
	faults, err := readSymbolSet(src, tbl)
	if err != nil {
		return nil, err
	}

	b := automaton.NewBuilder(n, tbl)
	for _, e := range observable {
		b.MarkObservable(e)
	}
	for _, e := range unobservable {
		b.MarkUnobservable(e)
	}
	for _, e := range faults {
		b.MarkFault(e)
	}

	if err := readTransitionsBlock(src, tbl, b); err != nil {
		return nil, err
	}

	initial, err := readStateIDLine(src, requireNonEmpty)
	if err != nil {
		return nil, err
	}
	for _, q := range initial {
		b.AddInitial(q)
	}

	final, err := readStateIDLine(src, allowEmpty)
	if err != nil {
		return nil, err
	}
	for _, q := range final {
		b.AddMarked(q)
	}

	return b.Build()
}

func parseStateCount(src *lineSource) (int, error) {
	line, ok := src.nextLogical()
	if !ok {
		return 0, fmt.Errorf("invalid transition line: missing state count")
	}
	n, err := strconv.Atoi(line)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid state count: %q", line)
	}
	return n, nil
}

// readSymbolSet reads one header line of space-separated event symbols
// (or "-" for an empty set) and resolves each to its id.
func readSymbolSet(src *lineSource, tbl *alphabet.Table) ([]alphabet.ID, error) {
	line, ok := src.nextLogical()
	if !ok {
		return nil, fmt.Errorf("invalid transition line: missing event-set line")
	}
	if line == "-" {
		return nil, nil
	}
	fields := strings.Fields(line)
	out := make([]alphabet.ID, 0, len(fields))
	for _, sym := range fields {
		id, ok := tbl.ID(sym)
		if !ok {
			return nil, fmt.Errorf("event not in alphabet: %q", sym)
		}
		out = append(out, id)
	}
	return out, nil
}

func readTransitionsBlock(src *lineSource, tbl *alphabet.Table, b *automaton.Builder) error {
	for {
		line, ok := src.nextRaw()
		if !ok {
			return nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return nil
		}
		if strings.HasPrefix(trimmed, "%") {
			continue
		}
		if looksLikeInitialStateMarker(trimmed) {
			return nil
		}

		fields := strings.Fields(trimmed)
		if len(fields) != 3 {
			return fmt.Errorf("invalid transition line: %q", trimmed)
		}
		src, dst := fields[0], fields[2]
		srcN, errSrc := strconv.Atoi(src)
		dstN, errDst := strconv.Atoi(dst)
		if errSrc != nil || errDst != nil {
			return fmt.Errorf("invalid transition line: %q", trimmed)
		}
		eventID, ok := tbl.ID(fields[1])
		if !ok {
			return fmt.Errorf("event not in alphabet: %q", fields[1])
		}
		b.AddTransition(automaton.StateID(srcN), eventID, automaton.StateID(dstN))
	}
}

func looksLikeInitialStateMarker(line string) bool {
	return strings.Contains(strings.ToLower(line), "initial state")
}

type emptyPolicy int

const (
	requireNonEmpty emptyPolicy = iota
	allowEmpty
)

func readStateIDLine(src *lineSource, policy emptyPolicy) ([]automaton.StateID, error) {
	line, ok := src.nextLogical()
	if !ok {
		if policy == allowEmpty {
			return nil, nil
		}
		return nil, fmt.Errorf("state out of range: missing state-id line")
	}
	if line == "-" {
		return nil, nil
	}
	fields := strings.Fields(line)
	if len(fields) == 0 && policy == requireNonEmpty {
		return nil, fmt.Errorf("state out of range: empty required state set")
	}
	out := make([]automaton.StateID, 0, len(fields))
	for _, tok := range fields {
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("state out of range: %q", tok)
		}
		out = append(out, automaton.StateID(id))
	}
	return out, nil
}

// lineSource wraps a bufio.Scanner with a skip-comments-and-blanks
// mode for header fields. Lines are consumed as they are read; no
// line is ever pushed back.
type lineSource struct {
	sc      *bufio.Scanner
	pending *string
}

func newLineSource(r io.Reader) *lineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineSource{sc: sc}
}

// nextRaw returns the next line verbatim (trimmed of trailing
// whitespace only by the caller), without skipping anything.
func (s *lineSource) nextRaw() (string, bool) {
	if s.pending != nil {
		line := *s.pending
		s.pending = nil
		return line, true
	}
	if s.sc.Scan() {
		return s.sc.Text(), true
	}
	return "", false
}

// nextLogical returns the next non-blank, non-%-comment line, trimmed.
func (s *lineSource) nextLogical() (string, bool) {
	for {
		line, ok := s.nextRaw()
		if !ok {
			return "", false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		return trimmed, true
	}
}
