// Package ingest loads per-participant session logs from disk.
//
// A data directory holds one subdirectory per participant, named with the
// participant code, each containing events.csv (tracker event messages) and
// recordings.csv (recording phase markers). Column lookup is header-name
// based so column order does not matter. Rows that cannot be read follow the
// pipeline's recovery rules: the row is skipped, never the batch.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sokolhessnerlab/csn/internal/eyelog"
)

const (
	eventsFileName     = "events.csv"
	recordingsFileName = "recordings.csv"

	columnMessage   = "message"
	columnStartTime = "start_time"
	columnTime      = "time"
)

// Session points at one participant's input files.
type Session struct {
	ParticipantID  string
	EventsPath     string
	RecordingsPath string
}

// DiscoverSessions lists the participant sessions under dataDir. Only
// subdirectories containing an events file are considered; a missing
// recordings file is left for the pipeline to surface per participant.
func DiscoverSessions(dataDir string) ([]Session, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %q: %w", dataDir, err)
	}

	sessions := make([]Session, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(dataDir, entry.Name())
		eventsPath := filepath.Join(dir, eventsFileName)
		if _, err := os.Stat(eventsPath); err != nil {
			continue
		}
		sessions = append(sessions, Session{
			ParticipantID:  entry.Name(),
			EventsPath:     eventsPath,
			RecordingsPath: filepath.Join(dir, recordingsFileName),
		})
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no participant sessions found under %q", dataDir)
	}
	return sessions, nil
}

// LoadEvents reads the raw event lines of one participant's events file.
// Rows with an unparseable start time are skipped.
func LoadEvents(path string) ([]eyelog.RawEventLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events %q: %w", path, err)
	}
	defer file.Close()

	reader := newLogReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read events header %q: %w", path, err)
	}
	messageIdx, err := columnIndex(header, columnMessage)
	if err != nil {
		return nil, fmt.Errorf("events %q: %w", path, err)
	}
	startIdx, err := columnIndex(header, columnStartTime)
	if err != nil {
		return nil, fmt.Errorf("events %q: %w", path, err)
	}

	var lines []eyelog.RawEventLine
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read events row %q: %w", path, err)
		}
		if messageIdx >= len(row) || startIdx >= len(row) {
			continue
		}
		start, err := strconv.ParseInt(strings.TrimSpace(row[startIdx]), 10, 64)
		if err != nil {
			continue
		}
		lines = append(lines, eyelog.RawEventLine{
			Message:   row[messageIdx],
			StartTime: start,
		})
	}
	return lines, nil
}

// LoadRecordingTimes reads the ordered phase-marker timestamps of one
// participant's recordings file. The values are returned verbatim in file
// order; interpreting them is the phase resolver's job.
func LoadRecordingTimes(path string) ([]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recordings %q: %w", path, err)
	}
	defer file.Close()

	reader := newLogReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read recordings header %q: %w", path, err)
	}
	timeIdx, err := columnIndex(header, columnTime)
	if err != nil {
		return nil, fmt.Errorf("recordings %q: %w", path, err)
	}

	var times []int64
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read recordings row %q: %w", path, err)
		}
		if timeIdx >= len(row) {
			continue
		}
		value, err := strconv.ParseInt(strings.TrimSpace(row[timeIdx]), 10, 64)
		if err != nil {
			continue
		}
		times = append(times, value)
	}
	return times, nil
}

func newLogReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	// Event messages contain commas inside quoted fields and rows vary in
	// trailing columns across tracker firmware versions.
	reader.FieldsPerRecord = -1
	return reader
}

func columnIndex(header []string, name string) (int, error) {
	for i, column := range header {
		if strings.EqualFold(strings.TrimSpace(column), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing column %q", name)
}
