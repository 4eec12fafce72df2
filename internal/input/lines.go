package input

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"avclapper/internal/logging"
	"avclapper/internal/records"
)

const (
	keywordScale = "SCALE"
	keywordEOF   = "EOF"
)

// cutMarkers are emitted by the video detector around scene cuts.
var cutMarkers = map[string]struct{}{
	"A#A#A#": {},
	"B#B#B#": {},
}

// IsCutMarker reports whether text is a cut marker rather than a sync tag.
func IsCutMarker(text string) bool {
	_, ok := cutMarkers[text]
	return ok
}

// ReadLines parses the line format from r into store. Blank lines are
// skipped. A header naming a file that is already registered keeps the
// first file; the duplicate section's records are discarded with a warning.
func ReadLines(r io.Reader, store *records.Store, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "input")
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *records.File
	discarding := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return &MalformedError{Line: lineNo, Text: raw, Reason: "expected two fields"}
		}
		key, value := fields[0], fields[1]

		if typ, err := records.ParseFileType(key); err == nil && key == string(typ) {
			file, created := store.Register(value, typ)
			current, discarding = file, !created
			if discarding {
				logger.Warn("duplicate file header; keeping first registration",
					logging.String("file", value),
					logging.String("type", string(typ)),
					logging.String("registered_as", string(file.Type)),
					logging.Int("line", lineNo),
				)
			}
			continue
		}

		if current == nil {
			return &MalformedError{Line: lineNo, Text: raw, Reason: "record before AUDIO or VIDEO header"}
		}

		if key == keywordScale {
			scale, err := parseNumber(value)
			if err != nil || scale < 0 {
				return &MalformedError{Line: lineNo, Text: raw, Reason: "invalid scale"}
			}
			if !discarding {
				current.Scale = scale
			}
			continue
		}

		timestamp, err := parseNumber(key)
		if err != nil {
			return &MalformedError{Line: lineNo, Text: raw, Reason: "invalid timestamp"}
		}
		if discarding {
			continue
		}
		switch {
		case value == keywordEOF:
			if timestamp < 0 {
				return &MalformedError{Line: lineNo, Text: raw, Reason: "negative length"}
			}
			current.Length = timestamp
		case IsCutMarker(value):
			current.AddCut(timestamp, value)
		default:
			current.AddTag(timestamp, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}

func parseNumber(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
