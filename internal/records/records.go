package records

import (
	"fmt"
	"strings"
)

// FileType distinguishes audio recordings from video recordings.
type FileType string

const (
	FileAudio FileType = "AUDIO"
	FileVideo FileType = "VIDEO"
)

// ParseFileType maps a header keyword onto a FileType.
func ParseFileType(value string) (FileType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(FileAudio):
		return FileAudio, nil
	case string(FileVideo):
		return FileVideo, nil
	default:
		return "", fmt.Errorf("unknown file type %q", value)
	}
}

// Solution is the affine mapping from a file's native clock onto the common
// timeline: event = Offset + Scale*timestamp.
type Solution struct {
	Offset float64 `json:"offset" yaml:"offset"`
	Scale  float64 `json:"scale" yaml:"scale"`
}

// Identity is the solution every file starts from.
func Identity() Solution {
	return Solution{Offset: 0, Scale: 1}
}

// Apply maps a native timestamp onto the common timeline.
func (s Solution) Apply(timestamp float64) float64 {
	return s.Offset + timestamp*s.Scale
}

// File is one recording and everything extracted from it.
type File struct {
	Name     string
	Type     FileType
	Length   float64
	Scale    float64 // known clock rate; 0 means unconstrained
	Tags     []*Tag
	Cuts     []Cut
	Solution Solution
}

// HasKnownScale reports whether an a-priori clock rate was supplied.
func (f *File) HasKnownScale() bool {
	return f != nil && f.Scale > 0
}

// AddTag appends a tag owned by f.
func (f *File) AddTag(timestamp float64, text string) *Tag {
	tag := &Tag{File: f, Timestamp: timestamp, Text: text}
	f.Tags = append(f.Tags, tag)
	return tag
}

// AddCut appends an opaque cut marker.
func (f *File) AddCut(timestamp float64, marker string) {
	f.Cuts = append(f.Cuts, Cut{Timestamp: timestamp, Marker: marker})
}

// Tag is a transcribed sync cue at a timestamp in its file's native clock.
type Tag struct {
	File      *File
	Timestamp float64
	Text      string
	Sync      *Sync
}

// Assigned reports whether the tag already belongs to a sync group.
func (t *Tag) Assigned() bool {
	return t.Sync != nil
}

func (t *Tag) String() string {
	if t == nil {
		return "<nil>"
	}
	name := ""
	if t.File != nil {
		name = t.File.Name
	}
	return fmt.Sprintf("%q@%.2f in %s", t.Text, t.Timestamp, name)
}

// Cut is a scene marker carried through analysis untouched.
type Cut struct {
	Timestamp float64 `json:"at" yaml:"at"`
	Marker    string  `json:"marker" yaml:"marker"`
}

// Sync groups tags from different files that mark the same physical event.
// Text is the seed the group was built from.
type Sync struct {
	Text string
	Tags []*Tag
}

// Add links tag into the group. It refuses a second tag from the same file
// and a tag that already belongs to another group.
func (s *Sync) Add(tag *Tag) error {
	if tag.Sync != nil {
		return fmt.Errorf("tag %s already assigned to sync %q", tag, tag.Sync.Text)
	}
	for _, member := range s.Tags {
		if member.File == tag.File {
			return fmt.Errorf("sync %q already holds a tag from %s", s.Text, tag.File.Name)
		}
	}
	s.Tags = append(s.Tags, tag)
	tag.Sync = s
	return nil
}

// Pairs returns the number of pairwise relations the group contributes.
func (s *Sync) Pairs() int {
	n := len(s.Tags)
	return n * (n - 1) / 2
}
