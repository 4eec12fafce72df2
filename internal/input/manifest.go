package input

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"avclapper/internal/records"
)

// Manifest is the YAML form of a clapper log.
type Manifest struct {
	Files []ManifestFile `yaml:"files"`
}

// ManifestFile describes one recording.
type ManifestFile struct {
	Name   string        `yaml:"name"`
	Type   string        `yaml:"type"`
	Scale  float64       `yaml:"scale,omitempty"`
	Length float64       `yaml:"length,omitempty"`
	Tags   []ManifestTag `yaml:"tags,omitempty"`
	Cuts   []records.Cut `yaml:"cuts,omitempty"`
}

// ManifestTag is one detected marker.
type ManifestTag struct {
	At   float64 `yaml:"at"`
	Text string  `yaml:"text"`
}

// ReadManifest decodes a YAML manifest from r into store. Names already in
// the store are rejected; a manifest is expected to describe each file once.
func ReadManifest(r io.Reader, store *records.Store) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &MalformedError{Reason: fmt.Sprintf("decode manifest: %v", err)}
	}
	return manifest.Load(store)
}

// Load registers the manifest files into store.
func (m Manifest) Load(store *records.Store) error {
	for i, entry := range m.Files {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return &MalformedError{Reason: fmt.Sprintf("files[%d]: name is required", i)}
		}
		typ, err := records.ParseFileType(entry.Type)
		if err != nil {
			return &MalformedError{Reason: fmt.Sprintf("files[%d] %s: %v", i, name, err)}
		}
		if entry.Scale < 0 || entry.Length < 0 {
			return &MalformedError{Reason: fmt.Sprintf("files[%d] %s: scale and length must not be negative", i, name)}
		}
		file, created := store.Register(name, typ)
		if !created {
			return &MalformedError{Reason: fmt.Sprintf("files[%d]: duplicate file %s", i, name)}
		}
		file.Scale = entry.Scale
		file.Length = entry.Length
		for j, tag := range entry.Tags {
			text := strings.TrimSpace(tag.Text)
			if text == "" || strings.ContainsAny(text, " \t") {
				return &MalformedError{Reason: fmt.Sprintf("files[%d].tags[%d]: invalid text %q", i, j, tag.Text)}
			}
			if IsCutMarker(text) {
				file.AddCut(tag.At, text)
				continue
			}
			file.AddTag(tag.At, text)
		}
		for _, cut := range entry.Cuts {
			file.AddCut(cut.Timestamp, cut.Marker)
		}
	}
	return nil
}

// ManifestFromStore converts the store contents back into manifest form.
func ManifestFromStore(store *records.Store) Manifest {
	var m Manifest
	for _, file := range store.Files() {
		entry := ManifestFile{
			Name:   file.Name,
			Type:   strings.ToLower(string(file.Type)),
			Scale:  file.Scale,
			Length: file.Length,
			Cuts:   append([]records.Cut(nil), file.Cuts...),
		}
		for _, tag := range file.Tags {
			entry.Tags = append(entry.Tags, ManifestTag{At: tag.Timestamp, Text: tag.Text})
		}
		m.Files = append(m.Files, entry)
	}
	return m
}
