package history

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"avclapper/internal/analysis"
	"avclapper/internal/solve"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSolved     Status = "solved"
	StatusUnsolvable Status = "unsolvable"
	StatusFailed     Status = "failed"
)

// Run is one recorded analyze invocation.
type Run struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	InputName   string         `json:"input_name"`
	InputDigest string         `json:"input_digest"`
	Status      Status         `json:"status"`
	Error       string         `json:"error,omitempty"`
	Files       int            `json:"files"`
	Syncs       int            `json:"syncs"`
	Ambiguities int            `json:"ambiguities"`
	Unassigned  int            `json:"unassigned"`
	Equations   int            `json:"equations"`
	Variables   int            `json:"variables"`
	Duration    time.Duration  `json:"duration"`
	Solutions   []FileSolution `json:"solutions,omitempty"`
}

// FileSolution is a file's outcome within a run. Unsolved runs store the
// identity solution.
type FileSolution struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Length float64 `json:"length"`
	Offset float64 `json:"offset"`
	Scale  float64 `json:"scale"`
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// StatusOf classifies the error returned by analysis.Analyzer.Run.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSolved
	case errors.Is(err, solve.ErrUnsolvable):
		return StatusUnsolvable
	default:
		return StatusFailed
	}
}

// NewID returns a fresh run identifier.
func NewID() string {
	return uuid.NewString()
}

// NewRun captures an analysis outcome. An empty id is replaced by NewID.
// input is the raw document the store was loaded from; result may be nil
// when loading failed.
func NewRun(id, inputName string, input []byte, result *analysis.Result, runErr error) Run {
	if id == "" {
		id = NewID()
	}
	run := Run{
		ID:          id,
		CreatedAt:   time.Now().UTC(),
		InputName:   inputName,
		InputDigest: Digest(input),
		Status:      StatusOf(runErr),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if result == nil {
		return run
	}
	run.Files = len(result.Files)
	run.Syncs = len(result.Syncs)
	run.Ambiguities = len(result.Ambiguities)
	run.Unassigned = len(result.Unassigned)
	run.Equations = result.Equations
	run.Variables = result.Variables
	run.Duration = result.Duration
	for _, file := range result.Files {
		run.Solutions = append(run.Solutions, FileSolution{
			Name:   file.Name,
			Type:   string(file.Type),
			Length: file.Length,
			Offset: file.Solution.Offset,
			Scale:  file.Solution.Scale,
		})
	}
	return run
}
