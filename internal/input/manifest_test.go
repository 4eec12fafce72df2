package input

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"avclapper/internal/logging"
	"avclapper/internal/records"
)

const sampleManifest = `files:
  - name: cam1.mp4
    type: video
    scale: 1.001
    length: 60
    tags:
      - {at: 3.1, text: "1234"}
      - {at: 20.75, text: "A#A#A#"}
    cuts:
      - {at: 40, marker: "B#B#B#"}
  - name: recorder.wav
    type: AUDIO
    tags:
      - {at: 12.4, text: "1.34"}
`

func TestReadManifest(t *testing.T) {
	store := records.NewStore()
	if err := ReadManifest(strings.NewReader(sampleManifest), store); err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	cam, ok := store.Lookup("cam1.mp4")
	if !ok {
		t.Fatal("missing cam1.mp4")
	}
	if cam.Type != records.FileVideo || cam.Scale != 1.001 || cam.Length != 60 {
		t.Fatalf("unexpected cam1 record %+v", cam)
	}
	if len(cam.Tags) != 1 || cam.Tags[0].Text != "1234" {
		t.Fatalf("unexpected cam1 tags %v", cam.Tags)
	}
	if len(cam.Cuts) != 2 {
		t.Fatalf("expected cut markers from tags and cuts, got %v", cam.Cuts)
	}
	rec, _ := store.Lookup("recorder.wav")
	if rec.Type != records.FileAudio || rec.Tags[0].Text != "1.34" {
		t.Fatalf("unexpected recorder record %+v", rec)
	}
}

func TestReadManifestRejectsBadEntries(t *testing.T) {
	tests := map[string]string{
		"unknown type":   "files:\n  - {name: a, type: subtitle}\n",
		"missing name":   "files:\n  - {type: audio}\n",
		"duplicate":      "files:\n  - {name: a, type: audio}\n  - {name: a, type: video}\n",
		"unknown field":  "files:\n  - {name: a, type: audio, speed: 2}\n",
		"blank tag text": "files:\n  - name: a\n    type: audio\n    tags: [{at: 1, text: \" \"}]\n",
		"negative scale": "files:\n  - {name: a, type: video, scale: -2}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			err := ReadManifest(strings.NewReader(doc), records.NewStore())
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestManifestRoundTripsLineFormat(t *testing.T) {
	store := records.NewStore()
	if err := ReadLines(strings.NewReader(sampleLog), store, logging.NewNop()); err != nil {
		t.Fatalf("ReadLines: %v", err)
	}

	var buf bytes.Buffer
	if err := yaml.NewEncoder(&buf).Encode(ManifestFromStore(store)); err != nil {
		t.Fatalf("encode manifest: %v", err)
	}

	again := records.NewStore()
	if err := ReadManifest(&buf, again); err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	for _, want := range store.Files() {
		got, ok := again.Lookup(want.Name)
		if !ok {
			t.Fatalf("missing %s after round trip", want.Name)
		}
		if got.Type != want.Type || got.Scale != want.Scale || got.Length != want.Length {
			t.Fatalf("file %s drifted: %+v vs %+v", want.Name, got, want)
		}
		if len(got.Tags) != len(want.Tags) || len(got.Cuts) != len(want.Cuts) {
			t.Fatalf("file %s lost records", want.Name)
		}
	}
}

func TestReadManifestEmpty(t *testing.T) {
	store := records.NewStore()
	if err := ReadManifest(strings.NewReader(""), store); err != nil {
		t.Fatalf("expected empty document to be accepted, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatal("expected no files")
	}
}
