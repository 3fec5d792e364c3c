package monitor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Telemetry line format emitted by the firmware, one line per second:
//
//	YYYY-MM-DD HH:MM:SS.mmm,<epoch_millis>,<mode>
//
// mode is E (edge sync) or P (polling fallback).
const timestampLayout = "2006-01-02 15:04:05.000"

// The two timestamp fields are derived from the same reconstruction but read
// a breath apart, so they may disagree by a couple of milliseconds.
const maxFieldSkew = 2 * time.Millisecond

var errFieldsDisagree = errors.New("timestamp fields disagree")

// Sample is one parsed telemetry line.
type Sample struct {
	Timestamp   time.Time
	EpochMillis uint64
	EdgeSynced  bool
}

// ParseLine parses and cross-checks one telemetry line.
func ParseLine(line string) (Sample, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 3 {
		return Sample{}, fmt.Errorf("want 3 fields, got %d: %q", len(fields), line)
	}

	ts, err := time.Parse(timestampLayout, fields[0])
	if err != nil {
		return Sample{}, fmt.Errorf("bad timestamp: %w", err)
	}
	epochMillis, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("bad epoch field: %w", err)
	}

	var edge bool
	switch fields[2] {
	case "E":
		edge = true
	case "P":
		edge = false
	default:
		return Sample{}, fmt.Errorf("bad mode %q", fields[2])
	}

	skew := time.Duration(ts.UnixMilli()-int64(epochMillis)) * time.Millisecond
	if skew < 0 {
		skew = -skew
	}
	if skew > maxFieldSkew {
		return Sample{}, fmt.Errorf("%w: %s vs %d", errFieldsDisagree, fields[0], epochMillis)
	}

	return Sample{Timestamp: ts, EpochMillis: epochMillis, EdgeSynced: edge}, nil
}
