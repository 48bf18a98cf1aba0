package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/reviewlens/reviewlens/internal/vectorize"
)

// EmotionLexicon maps words to one or more emotion categories.
type EmotionLexicon struct {
	categories   []string
	wordEmotions map[string][]string
}

// EmotionCounts is a document x emotion-category count matrix plus
// corpus-level column totals.
type EmotionCounts struct {
	Categories []string
	PerDoc     [][]int
	Totals     map[string]int
}

// loadEmotions parses the tab-separated word/emotion pairs.
func loadEmotions() (*EmotionLexicon, error) {
	data, err := dataFS.ReadFile("data/nrc.txt")
	if err != nil {
		return nil, fmt.Errorf("reading emotion lexicon: %w", err)
	}

	wordEmotions := make(map[string][]string)
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed emotion lexicon line: %q", line)
		}
		word, emotion := parts[0], strings.TrimSpace(parts[1])
		wordEmotions[word] = append(wordEmotions[word], emotion)
		seen[emotion] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return &EmotionLexicon{categories: categories, wordEmotions: wordEmotions}, nil
}

// Categories returns the emotion category names in sorted order.
func (e *EmotionLexicon) Categories() []string {
	return e.categories
}

// Count builds the document x emotion count matrix for a corpus and
// sums it into corpus-level totals. This pass touches every token of
// every document and dominates runtime on large corpora.
func (e *EmotionLexicon) Count(corpus []string) *EmotionCounts {
	index := make(map[string]int, len(e.categories))
	for i, c := range e.categories {
		index[c] = i
	}

	counts := &EmotionCounts{
		Categories: e.categories,
		PerDoc:     make([][]int, len(corpus)),
		Totals:     make(map[string]int, len(e.categories)),
	}

	for i, doc := range corpus {
		row := make([]int, len(e.categories))
		for _, tok := range vectorize.Tokenize(doc) {
			for _, emotion := range e.wordEmotions[tok] {
				row[index[emotion]]++
			}
		}
		counts.PerDoc[i] = row
	}

	for _, row := range counts.PerDoc {
		for j, c := range e.categories {
			counts.Totals[c] += row[j]
		}
	}
	return counts
}
