package vectorize

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// TermStats holds aggregate statistics for a single vocabulary term.
type TermStats struct {
	Count   int `json:"count"`    // total occurrences across the corpus
	DocFreq int `json:"doc_freq"` // number of documents containing the term
}

// Vocabulary maps terms to their corpus statistics. It is built once
// from the full corpus and persisted so later runs can reapply the same
// term set without recomputation.
type Vocabulary struct {
	Terms   map[string]TermStats `json:"terms"`
	NumDocs int                  `json:"num_docs"`
}

// BuildVocabulary counts term and document frequencies over the whole
// corpus, excluding stopwords.
func BuildVocabulary(corpus []string) *Vocabulary {
	v := &Vocabulary{
		Terms:   make(map[string]TermStats),
		NumDocs: len(corpus),
	}

	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range ContentTokens(doc) {
			stats := v.Terms[tok]
			stats.Count++
			if !seen[tok] {
				stats.DocFreq++
				seen[tok] = true
			}
			v.Terms[tok] = stats
		}
	}
	return v
}

// Prune returns a vocabulary restricted to terms satisfying all of:
// total count >= minTermCount, document proportion >= minDocProportion,
// and document proportion <= maxDocProportion. Pruning with the same
// thresholds is idempotent.
func (v *Vocabulary) Prune(minTermCount int, minDocProportion, maxDocProportion float64) *Vocabulary {
	pruned := &Vocabulary{
		Terms:   make(map[string]TermStats),
		NumDocs: v.NumDocs,
	}
	if v.NumDocs == 0 {
		return pruned
	}

	for term, stats := range v.Terms {
		prop := float64(stats.DocFreq) / float64(v.NumDocs)
		if stats.Count < minTermCount {
			continue
		}
		if prop < minDocProportion || prop > maxDocProportion {
			continue
		}
		pruned.Terms[term] = stats
	}
	return pruned
}

// Size returns the number of terms.
func (v *Vocabulary) Size() int {
	return len(v.Terms)
}

// TermList returns the terms in sorted order, fixing the column order
// of matrices derived from this vocabulary.
func (v *Vocabulary) TermList() []string {
	terms := make([]string, 0, len(v.Terms))
	for t := range v.Terms {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// RawCounts returns term -> total count. This is the weaker fallback
// signal used when no matrix-based term score is available.
func (v *Vocabulary) RawCounts() map[string]float64 {
	counts := make(map[string]float64, len(v.Terms))
	for term, stats := range v.Terms {
		counts[term] = float64(stats.Count)
	}
	return counts
}

// Save writes the vocabulary artifact as JSON.
func (v *Vocabulary) Save(path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing vocabulary artifact: %w", err)
	}
	return nil
}

// LoadVocabulary reads a previously saved vocabulary artifact.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary artifact: %w", err)
	}
	var v Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding vocabulary artifact: %w", err)
	}
	if v.Terms == nil {
		v.Terms = make(map[string]TermStats)
	}
	return &v, nil
}
