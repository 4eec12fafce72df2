package solve

import (
	"fmt"

	"avclapper/internal/records"
)

// Kind tells which parameter of a file a variable stands for.
type Kind int

const (
	KindOffset Kind = iota
	KindScale
)

func (k Kind) String() string {
	switch k {
	case KindOffset:
		return "offset"
	case KindScale:
		return "scale"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Variable is one column of the design matrix.
type Variable struct {
	Index int
	File  *records.File
	Kind  Kind
}

type fileVars struct {
	offset *Variable
	scale  *Variable
}

// System is the linear system A x = y for one run. A is stored row-major.
type System struct {
	Files     []*records.File
	Reference *records.File
	Variables []*Variable

	rows, cols int
	a          []float64
	y          []float64
	vars       map[*records.File]fileVars
	syncs      []*records.Sync
}

// Build allocates variables for files, which must be in the deterministic
// store order, and emits one row per known scale followed by one row per
// member pair of every sync.
func Build(files []*records.File, syncs []*records.Sync) (*System, error) {
	sys := &System{
		Files: files,
		vars:  make(map[*records.File]fileVars, len(files)),
		syncs: syncs,
	}

	for i, file := range files {
		if _, dup := sys.vars[file]; dup {
			return nil, fmt.Errorf("build system: file %s listed twice", file.Name)
		}
		var fv fileVars
		if i == 0 {
			sys.Reference = file
		} else {
			fv.offset = sys.allocate(file, KindOffset)
		}
		if file.HasKnownScale() || (i > 0 && file.Type == records.FileVideo) {
			fv.scale = sys.allocate(file, KindScale)
		}
		sys.vars[file] = fv
	}
	sys.cols = len(sys.Variables)

	for _, file := range files {
		if file.HasKnownScale() {
			sys.rows++
		}
	}
	for _, sync := range syncs {
		for _, tag := range sync.Tags {
			if _, ok := sys.vars[tag.File]; !ok {
				return nil, fmt.Errorf("build system: sync %q references unknown file %s", sync.Text, tag.File.Name)
			}
		}
		sys.rows += sync.Pairs()
	}

	sys.a = make([]float64, sys.rows*sys.cols)
	sys.y = make([]float64, sys.rows)

	row := 0
	for _, file := range files {
		if !file.HasKnownScale() {
			continue
		}
		sys.set(row, sys.vars[file].scale, 1)
		sys.y[row] = file.Scale
		row++
	}
	for _, sync := range syncs {
		for i := 0; i < len(sync.Tags); i++ {
			for j := i + 1; j < len(sync.Tags); j++ {
				sys.addPair(row, sync.Tags[i], sync.Tags[j])
				row++
			}
		}
	}
	if row != sys.rows {
		return nil, fmt.Errorf("build system: emitted %d rows, expected %d", row, sys.rows)
	}
	return sys, nil
}

func (s *System) allocate(file *records.File, kind Kind) *Variable {
	v := &Variable{Index: len(s.Variables), File: file, Kind: kind}
	s.Variables = append(s.Variables, v)
	return v
}

// addPair encodes offset_a + scale_a*t_a = offset_b + scale_b*t_b. Files
// without a scale variable run at scale one, so their timestamp moves to y.
func (s *System) addPair(row int, a, b *records.Tag) {
	va, vb := s.vars[a.File], s.vars[b.File]
	if va.offset != nil {
		s.set(row, va.offset, 1)
	}
	if va.scale != nil {
		s.set(row, va.scale, a.Timestamp)
	} else {
		s.y[row] -= a.Timestamp
	}
	if vb.offset != nil {
		s.set(row, vb.offset, -1)
	}
	if vb.scale != nil {
		s.set(row, vb.scale, -b.Timestamp)
	} else {
		s.y[row] += b.Timestamp
	}
}

func (s *System) set(row int, v *Variable, value float64) {
	s.a[row*s.cols+v.Index] = value
}

// Rows returns the number of equations.
func (s *System) Rows() int { return s.rows }

// Cols returns the number of variables.
func (s *System) Cols() int { return s.cols }

// At returns the coefficient of variable col in equation row.
func (s *System) At(row, col int) float64 { return s.a[row*s.cols+col] }

// RHS returns the right-hand side of equation row.
func (s *System) RHS(row int) float64 { return s.y[row] }

// VariablesOf returns the offset and scale variables of file; either may be nil.
func (s *System) VariablesOf(file *records.File) (offset, scale *Variable) {
	fv := s.vars[file]
	return fv.offset, fv.scale
}
