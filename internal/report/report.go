package report

import (
	"math"

	"avclapper/internal/analysis"
	"avclapper/internal/records"
)

// Report is the serializable view of one run.
type Report struct {
	RunID       string      `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Solved      bool        `json:"solved" yaml:"solved"`
	Error       string      `json:"error,omitempty" yaml:"error,omitempty"`
	Files       []File      `json:"files" yaml:"files"`
	Syncs       []Sync      `json:"syncs" yaml:"syncs"`
	Ambiguities []Ambiguity `json:"ambiguities,omitempty" yaml:"ambiguities,omitempty"`
	Unassigned  []Member    `json:"unassigned,omitempty" yaml:"unassigned,omitempty"`
	Equations   int         `json:"equations" yaml:"equations"`
	Variables   int         `json:"variables" yaml:"variables"`
}

// File is one recording with its computed solution.
type File struct {
	Name       string  `json:"name" yaml:"name"`
	Type       string  `json:"type" yaml:"type"`
	Length     float64 `json:"length" yaml:"length"`
	KnownScale float64 `json:"known_scale,omitempty" yaml:"known_scale,omitempty"`
	Tags       int     `json:"tags" yaml:"tags"`
	Offset     float64 `json:"offset" yaml:"offset"`
	Scale      float64 `json:"scale" yaml:"scale"`
}

// Sync is one correlated group. Mean and Deviation are computed over the
// members' aligned times and are only meaningful for solved runs.
type Sync struct {
	Text      string   `json:"text" yaml:"text"`
	Members   []Member `json:"members" yaml:"members"`
	Mean      float64  `json:"mean" yaml:"mean"`
	Deviation float64  `json:"deviation" yaml:"deviation"`
}

// Member is a tag as it appears in a report.
type Member struct {
	File      string  `json:"file" yaml:"file"`
	Timestamp float64 `json:"timestamp" yaml:"timestamp"`
	Text      string  `json:"text" yaml:"text"`
	Aligned   float64 `json:"aligned" yaml:"aligned"`
}

// Ambiguity records a tie the correlator broke by tag order.
type Ambiguity struct {
	Seed       string   `json:"seed" yaml:"seed"`
	File       string   `json:"file" yaml:"file"`
	Chosen     string   `json:"chosen" yaml:"chosen"`
	Candidates []string `json:"candidates" yaml:"candidates"`
}

// Build converts a result into a report. runErr, when non-nil, is the error
// Run returned alongside result.
func Build(result *analysis.Result, runErr error) Report {
	rep := Report{
		Files: []File{},
		Syncs: []Sync{},
	}
	if runErr != nil {
		rep.Error = runErr.Error()
	}
	if result == nil {
		return rep
	}
	rep.Solved = result.Solved()
	rep.Equations = result.Equations
	rep.Variables = result.Variables

	for _, file := range result.Files {
		rep.Files = append(rep.Files, File{
			Name:       file.Name,
			Type:       string(file.Type),
			Length:     file.Length,
			KnownScale: file.Scale,
			Tags:       len(file.Tags),
			Offset:     file.Solution.Offset,
			Scale:      file.Solution.Scale,
		})
	}

	for _, sync := range result.Syncs {
		entry := Sync{Text: sync.Text, Members: make([]Member, 0, len(sync.Tags))}
		aligned := make([]float64, 0, len(sync.Tags))
		for _, tag := range sync.Tags {
			member := newMember(tag)
			entry.Members = append(entry.Members, member)
			aligned = append(aligned, member.Aligned)
		}
		entry.Mean, entry.Deviation = Deviation(aligned)
		rep.Syncs = append(rep.Syncs, entry)
	}

	for _, amb := range result.Ambiguities {
		item := Ambiguity{Seed: amb.Seed, File: amb.File}
		if amb.Chosen != nil {
			item.Chosen = amb.Chosen.Text
		}
		for _, candidate := range amb.Candidates {
			item.Candidates = append(item.Candidates, candidate.Text)
		}
		rep.Ambiguities = append(rep.Ambiguities, item)
	}

	for _, tag := range result.Unassigned {
		rep.Unassigned = append(rep.Unassigned, newMember(tag))
	}
	return rep
}

func newMember(tag *records.Tag) Member {
	member := Member{Timestamp: tag.Timestamp, Text: tag.Text, Aligned: tag.Timestamp}
	if tag.File != nil {
		member.File = tag.File.Name
		member.Aligned = tag.File.Solution.Apply(tag.Timestamp)
	}
	return member
}

// Deviation returns the mean and the population standard deviation of
// values. An empty slice yields zeros.
func Deviation(values []float64) (mean, deviation float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum, squares float64
	for _, v := range values {
		sum += v
		squares += v * v
	}
	n := float64(len(values))
	mean = sum / n
	deviation = math.Sqrt(math.Abs(squares/n - mean*mean))
	return mean, deviation
}
