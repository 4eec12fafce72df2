package solve

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"avclapper/internal/records"
)

// parallelTolerance bounds |det| / (|r1|·|r2|) below which two restricted
// rows count as parallel.
const parallelTolerance = 1e-12

// Solve computes the least-squares solution and writes it onto the files.
// Every file is reset to the identity first, so on error the records hold
// no partial result.
func (s *System) Solve() error {
	for _, file := range s.Files {
		file.Solution = records.Identity()
	}
	if s.cols == 0 {
		return nil
	}
	if names := s.UnderConstrained(); len(names) > 0 {
		return &UnsolvableError{Files: names}
	}

	a := mat.NewDense(s.rows, s.cols, s.a)
	y := mat.NewVecDense(s.rows, s.y)

	var ata mat.Dense
	ata.Mul(a.T(), a)
	var aty mat.VecDense
	aty.MulVec(a.T(), y)

	var x mat.VecDense
	if err := x.SolveVec(&ata, &aty); err != nil {
		return &UnsolvableError{Err: err}
	}
	for i := 0; i < x.Len(); i++ {
		if v := x.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return &UnsolvableError{Files: []string{s.Variables[i].File.Name}}
		}
	}

	for _, v := range s.Variables {
		switch v.Kind {
		case KindOffset:
			v.File.Solution.Offset = x.AtVec(v.Index)
		case KindScale:
			v.File.Solution.Scale = x.AtVec(v.Index)
		}
	}
	return nil
}

// UnderConstrained names, in sorted order, the files whose variables the
// equations cannot pin down: files whose own columns have rank below their
// variable count, and files not linked to the reference by any sync.
func (s *System) UnderConstrained() []string {
	flagged := make(map[string]struct{})

	for _, file := range s.Files {
		fv := s.vars[file]
		var cols []int
		if fv.offset != nil {
			cols = append(cols, fv.offset.Index)
		}
		if fv.scale != nil {
			cols = append(cols, fv.scale.Index)
		}
		if len(cols) == 0 {
			continue
		}
		if s.restrictedRank(cols) < len(cols) {
			flagged[file.Name] = struct{}{}
		}
	}

	for _, file := range s.disconnected() {
		flagged[file.Name] = struct{}{}
	}

	names := make([]string, 0, len(flagged))
	for name := range flagged {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// restrictedRank returns the rank (at most two) of A restricted to cols.
func (s *System) restrictedRank(cols []int) int {
	var first []float64
	var firstNorm float64
	for row := 0; row < s.rows; row++ {
		r := make([]float64, len(cols))
		var norm float64
		for i, col := range cols {
			r[i] = s.At(row, col)
			norm += r[i] * r[i]
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		if first == nil {
			if len(cols) == 1 {
				return 1
			}
			first, firstNorm = r, norm
			continue
		}
		det := first[0]*r[1] - first[1]*r[0]
		if math.Abs(det) > parallelTolerance*firstNorm*norm {
			return 2
		}
	}
	if first != nil {
		return 1
	}
	return 0
}

// disconnected returns the files that share no chain of syncs with the
// reference. Their offsets can drift together, so the system is singular.
func (s *System) disconnected() []*records.File {
	if s.Reference == nil {
		return nil
	}
	parent := make(map[*records.File]*records.File, len(s.Files))
	var find func(*records.File) *records.File
	find = func(f *records.File) *records.File {
		p, ok := parent[f]
		if !ok || p == f {
			parent[f] = f
			return f
		}
		root := find(p)
		parent[f] = root
		return root
	}
	for _, sync := range s.syncs {
		if len(sync.Tags) < 2 {
			continue
		}
		root := find(sync.Tags[0].File)
		for _, tag := range sync.Tags[1:] {
			if other := find(tag.File); other != root {
				parent[other] = root
			}
		}
	}

	ref := find(s.Reference)
	var out []*records.File
	for _, file := range s.Files {
		if find(file) != ref {
			out = append(out, file)
		}
	}
	return out
}

// Normalize shifts every offset so the earliest file starts at zero. The
// reference's pinned offset takes part in the minimum.
func Normalize(files []*records.File) {
	if len(files) == 0 {
		return
	}
	lowest := files[0].Solution.Offset
	for _, file := range files[1:] {
		if file.Solution.Offset < lowest {
			lowest = file.Solution.Offset
		}
	}
	for _, file := range files {
		file.Solution.Offset -= lowest
	}
}
