package records

import "sort"

// Store is the filename-keyed registry of files.
type Store struct {
	files map[string]*File
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{files: make(map[string]*File)}
}

// Register returns the file stored under name, creating it when absent. An
// existing entry is never replaced; created is false in that case and the
// type argument is ignored.
func (s *Store) Register(name string, typ FileType) (file *File, created bool) {
	if existing, ok := s.files[name]; ok {
		return existing, false
	}
	file = &File{Name: name, Type: typ, Solution: Identity()}
	s.files[name] = file
	return file, true
}

// Lookup finds a file by name.
func (s *Store) Lookup(name string) (*File, bool) {
	file, ok := s.files[name]
	return file, ok
}

// Len returns the number of registered files.
func (s *Store) Len() int {
	return len(s.files)
}

// Files returns every file ordered by filename.
func (s *Store) Files() []*File {
	out := make([]*File, 0, len(s.files))
	for _, file := range s.files {
		out = append(out, file)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Tags returns every tag, grouped by file in filename order and in ingest
// order within a file.
func (s *Store) Tags() []*Tag {
	var out []*Tag
	for _, file := range s.Files() {
		out = append(out, file.Tags...)
	}
	return out
}

// Reset clears sync assignments and solutions so the store can be analyzed
// again from scratch.
func (s *Store) Reset() {
	for _, file := range s.files {
		file.Solution = Identity()
		for _, tag := range file.Tags {
			tag.Sync = nil
		}
	}
}
