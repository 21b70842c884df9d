// Package summary implements incremental parsing of pkg_summary(5) streams.
//
// A Stream accepts arbitrarily sized byte chunks through its io.Writer
// interface and accumulates complete, validated package records. Records are
// KEY=VALUE lines separated by a blank line; a record is only parsed once its
// trailing blank line has been seen, so chunk boundaries never affect the
// result.
package summary

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/ralt/pkgsum/internal/models"
)

// recordSep is the blank line separating pkg_summary(5) records.
const recordSep = "\n\n"

// compactAt is the consumed-prefix size above which the buffer is shifted
// down instead of growing forever.
const compactAt = 64 * 1024

// Report is the structured outcome of ingestion: how many records were
// accepted or rejected and why. It replaces console diagnostics so callers
// can detect silent data loss programmatically.
type Report struct {
	// Accepted counts records that passed validation.
	Accepted int
	// Rejected counts records that were discarded.
	Rejected int
	// FieldErrors lists fields that were skipped inside otherwise-kept
	// records (unknown keys, bad integers, malformed package names).
	FieldErrors []*models.ParseError
	// RecordErrors lists why each rejected record was discarded.
	RecordErrors []*models.ParseError
}

// Stream is a stateful accumulator over an open-ended sequence of byte
// chunks. It is owned by a single caller; concurrent writes require external
// locking.
type Stream struct {
	buf     []byte
	off     int // start of unconsumed data in buf
	entries []*models.Summary
	report  Report
	err     error
}

// NewStream returns an empty Stream.
func NewStream() *Stream {
	return &Stream{}
}

// Entries returns the accumulated valid records in arrival order. The slice
// is shared with the stream; use Drain to take ownership.
func (s *Stream) Entries() []*models.Summary {
	return s.entries
}

// Drain removes and returns all accumulated records.
func (s *Stream) Drain() []*models.Summary {
	entries := s.entries
	s.entries = nil
	return entries
}

// Report returns a snapshot of the cumulative ingestion outcome.
func (s *Stream) Report() Report {
	return s.report
}

// Err returns the stream-fatal error, if any. Only invalid encoding is
// stream-fatal; every other parse problem is reported per field or per
// record and the stream keeps going.
func (s *Stream) Err() error {
	return s.err
}

// Write appends p to the internal buffer and parses every record whose
// terminating blank line is now present. The unterminated tail is retained
// for the next call. All supplied bytes are always accounted for; a non-nil
// error means the stream itself is dead (invalid encoding), never a short
// write.
func (s *Stream) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.buf = append(s.buf, p...)

	// Only the prefix up to the last record separator is known-complete.
	pending := s.buf[s.off:]
	idx := bytes.LastIndex(pending, []byte(recordSep))
	if idx < 0 {
		return len(p), nil
	}
	complete := pending[:idx+len(recordSep)]

	// Validate encoding on the complete prefix only; the tail may still end
	// in a partial UTF-8 sequence that a later chunk finishes.
	if !utf8.Valid(complete) {
		s.err = &models.ParseError{Type: models.ErrInvalidEncoding}
		return len(p), s.err
	}

	text := strings.TrimSuffix(string(complete), recordSep)
	for _, record := range strings.Split(text, recordSep) {
		s.parseRecord(record)
	}

	s.off += idx + len(recordSep)
	s.compact()
	return len(p), nil
}

// parseRecord feeds one record's lines through the field dispatcher and
// validates the result. Field-level errors skip the field; a malformed line
// or a failed validation discards the record. Neither stops the stream.
func (s *Stream) parseRecord(record string) {
	sum := &models.Summary{}
	for _, line := range strings.Split(record, "\n") {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			s.reject(sum, &models.ParseError{Type: models.ErrMalformedLine, Value: line})
			return
		}
		if err := sum.ParseEntry(parts[0], parts[1]); err != nil {
			var perr *models.ParseError
			if errors.As(err, &perr) {
				s.report.FieldErrors = append(s.report.FieldErrors, perr)
			}
			logrus.Debugf("skipping field: %v", err)
		}
	}
	if err := sum.Validate(); err != nil {
		var perr *models.ParseError
		if errors.As(err, &perr) {
			s.reject(sum, perr)
			return
		}
		s.reject(sum, &models.ParseError{Type: models.ErrMissingField, Err: err})
		return
	}
	s.report.Accepted++
	s.entries = append(s.entries, sum)
}

func (s *Stream) reject(sum *models.Summary, perr *models.ParseError) {
	s.report.Rejected++
	s.report.RecordErrors = append(s.report.RecordErrors, perr)
	if sum.Pkgname != "" {
		logrus.Warnf("discarding record %s: %v", sum.Pkgname, perr)
	} else {
		logrus.Warnf("discarding record: %v", perr)
	}
}

// compact shifts the unconsumed tail to the front of the buffer once the
// consumed prefix gets large, so repeated writes don't grow the backing
// array without bound.
func (s *Stream) compact() {
	if s.off == len(s.buf) {
		s.buf = s.buf[:0]
		s.off = 0
		return
	}
	if s.off >= compactAt {
		n := copy(s.buf, s.buf[s.off:])
		s.buf = s.buf[:n]
		s.off = 0
	}
}
