package correlate

import (
	"log/slog"
	"sort"

	"avclapper/internal/logging"
	"avclapper/internal/records"
)

// Ambiguity records a seed that two or more tags of one file matched equally
// well. Chosen is the tag that won the tie.
type Ambiguity struct {
	Seed       string
	File       string
	Chosen     *records.Tag
	Candidates []*records.Tag
}

// Result is the outcome of one correlation pass.
type Result struct {
	// Syncs in creation order, one per seed text.
	Syncs []*records.Sync
	// Ambiguities lists every tie that needed a tie-break.
	Ambiguities []Ambiguity
	// Unassigned holds tags left without a group because their text was
	// consumed by an earlier group, typically a marker repeated in one file.
	Unassigned []*records.Tag
}

// Lookup returns the sync built from seed.
func (r Result) Lookup(seed string) (*records.Sync, bool) {
	for _, sync := range r.Syncs {
		if sync.Text == seed {
			return sync, true
		}
	}
	return nil, false
}

// Correlator partitions the tags of a store into sync groups.
type Correlator struct {
	store  *records.Store
	logger *slog.Logger
}

// New builds a correlator over store. A nil logger discards warnings.
func New(store *records.Store, logger *slog.Logger) *Correlator {
	return &Correlator{
		store:  store,
		logger: logging.NewComponentLogger(logger, "correlate"),
	}
}

// Correlate is shorthand for New(store, logger).Run().
func Correlate(store *records.Store, logger *slog.Logger) Result {
	return New(store, logger).Run()
}

// Run assigns tags to sync groups. Tags already carrying a sync are left
// alone; call Store.Reset first to start over.
func (c *Correlator) Run() Result {
	files := c.store.Files()
	unmatched := make(map[string]struct{})
	for _, file := range files {
		for _, tag := range file.Tags {
			if !tag.Assigned() {
				unmatched[tag.Text] = struct{}{}
			}
		}
	}

	var result Result
	for len(unmatched) > 0 {
		seed := nextSeed(unmatched)
		sync := &records.Sync{Text: seed}
		for _, file := range files {
			best, ties := bestCandidate(file, seed)
			if best == nil {
				continue
			}
			if len(ties) > 1 {
				amb := Ambiguity{Seed: seed, File: file.Name, Chosen: best, Candidates: ties}
				result.Ambiguities = append(result.Ambiguities, amb)
				c.logger.Warn("several tags match seed equally well",
					logging.String("seed", seed),
					logging.String("file", file.Name),
					logging.Int("candidates", len(ties)),
					logging.Float64("chosen_at", best.Timestamp),
				)
			}
			// bestCandidate only returns unassigned tags and each file is
			// visited once, so Add cannot fail here.
			_ = sync.Add(best)
			delete(unmatched, best.Text)
		}
		delete(unmatched, seed)
		result.Syncs = append(result.Syncs, sync)
		c.logger.Debug("sync group formed",
			logging.String("seed", seed),
			logging.Int("members", len(sync.Tags)),
		)
	}

	for _, file := range files {
		for _, tag := range file.Tags {
			if tag.Assigned() {
				continue
			}
			result.Unassigned = append(result.Unassigned, tag)
			c.logger.Warn("tag left without sync group",
				logging.String("file", file.Name),
				logging.String("text", tag.Text),
				logging.Float64("at", tag.Timestamp),
			)
		}
	}
	return result
}

// nextSeed picks the unmatched text with the fewest wildcards, lexically
// smallest on ties. It works on a sorted copy so the set is never mutated
// while iterated.
func nextSeed(unmatched map[string]struct{}) string {
	texts := make([]string, 0, len(unmatched))
	for text := range unmatched {
		texts = append(texts, text)
	}
	sort.Slice(texts, func(i, j int) bool {
		wi, wj := Wildcards(texts[i]), Wildcards(texts[j])
		if wi != wj {
			return wi < wj
		}
		return texts[i] < texts[j]
	})
	return texts[0]
}

// bestCandidate returns the unassigned tag of file that matches seed with the
// fewest wildcard positions, plus every tag sharing that best score when
// there is more than one.
func bestCandidate(file *records.File, seed string) (*records.Tag, []*records.Tag) {
	var best *records.Tag
	bestWildcards := 0
	var ties []*records.Tag
	for _, tag := range file.Tags {
		if tag.Assigned() {
			continue
		}
		wildcards, ok := Match(seed, tag.Text)
		if !ok {
			continue
		}
		switch {
		case best == nil || wildcards < bestWildcards:
			best = tag
			bestWildcards = wildcards
			ties = []*records.Tag{tag}
		case wildcards == bestWildcards:
			ties = append(ties, tag)
		}
	}
	return best, ties
}
