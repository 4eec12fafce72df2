package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"avclapper/internal/input"
	"avclapper/internal/records"
)

const (
	inputAuto  = "auto"
	inputLines = "lines"
	inputYAML  = "yaml"
)

// session is a decoded input document together with its raw bytes.
type session struct {
	name  string
	raw   []byte
	store *records.Store
}

// readSession loads args[0], or stdin when args is empty or "-".
func readSession(cmd *cobra.Command, args []string, format string, logger *slog.Logger) (*session, error) {
	name := "-"
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		name = strings.TrimSpace(args[0])
	}

	var raw []byte
	var err error
	if name == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", name, err)
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == inputAuto {
		format = detectFormat(name)
	}

	store := records.NewStore()
	switch format {
	case inputLines:
		err = input.ReadLines(bytes.NewReader(raw), store, logger)
	case inputYAML:
		err = input.ReadManifest(bytes.NewReader(raw), store)
	default:
		return nil, fmt.Errorf("unknown input format %q (want auto, lines or yaml)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &session{name: name, raw: raw, store: store}, nil
}

func detectFormat(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return inputYAML
	default:
		return inputLines
	}
}
