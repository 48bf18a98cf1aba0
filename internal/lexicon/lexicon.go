// Package lexicon scores reviews against fixed, pre-shipped sentiment
// and emotion dictionaries. No training is involved: every scorer is a
// pure lookup over tokenized text.
package lexicon

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/reviewlens/reviewlens/internal/vectorize"
)

//go:embed data
var dataFS embed.FS

// Label is the categorical sentiment derived from a numeric score.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// LabelFromScore maps a numeric score to a label by sign. Zero maps to
// neutral; this tie-break is fixed and applied uniformly across
// lexicons regardless of their score ranges.
func LabelFromScore(score float64) Label {
	switch {
	case score > 0:
		return LabelPositive
	case score < 0:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Scorer computes one numeric sentiment score per document.
type Scorer interface {
	Name() string
	Score(text string) float64
}

// valenceLexicon is a word -> valence table summed over document tokens.
type valenceLexicon struct {
	lexiconName string
	valences    map[string]float64
}

func (l *valenceLexicon) Name() string { return l.lexiconName }

func (l *valenceLexicon) Score(text string) float64 {
	var score float64
	for _, tok := range vectorize.Tokenize(text) {
		score += l.valences[tok]
	}
	return score
}

// Set bundles the three fixed sentiment lexicons and the emotion lexicon.
type Set struct {
	Syuzhet  Scorer
	Bing     Scorer
	Afinn    Scorer
	Emotions *EmotionLexicon
}

// Load parses the embedded lexicon data.
func Load() (*Set, error) {
	syuzhet, err := loadSyuzhet()
	if err != nil {
		return nil, err
	}
	bing, err := loadBing()
	if err != nil {
		return nil, err
	}
	afinn, err := loadAfinn()
	if err != nil {
		return nil, err
	}
	emotions, err := loadEmotions()
	if err != nil {
		return nil, err
	}
	return &Set{Syuzhet: syuzhet, Bing: bing, Afinn: afinn, Emotions: emotions}, nil
}

// loadSyuzhet parses the fractional-valence CSV (word,value).
func loadSyuzhet() (Scorer, error) {
	data, err := dataFS.ReadFile("data/syuzhet.csv")
	if err != nil {
		return nil, fmt.Errorf("reading syuzhet lexicon: %w", err)
	}

	valences := make(map[string]float64)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first { // header row
			first = false
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed syuzhet lexicon line: %q", line)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed syuzhet valence %q: %w", parts[1], err)
		}
		valences[parts[0]] = v
	}
	return &valenceLexicon{lexiconName: "syuzhet", valences: valences}, scanner.Err()
}

// loadBing parses the positive and negative word lists. Positive words
// count +1, negative words -1; the document score is the difference.
func loadBing() (Scorer, error) {
	valences := make(map[string]float64)

	for _, spec := range []struct {
		file    string
		valence float64
	}{
		{"data/bing_positive.txt", 1},
		{"data/bing_negative.txt", -1},
	} {
		words, err := loadWordList(spec.file)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			valences[w] = spec.valence
		}
	}
	return &valenceLexicon{lexiconName: "bing", valences: valences}, nil
}

// loadAfinn parses the tab-separated integer valence list.
func loadAfinn() (Scorer, error) {
	data, err := dataFS.ReadFile("data/afinn.txt")
	if err != nil {
		return nil, fmt.Errorf("reading afinn lexicon: %w", err)
	}

	valences := make(map[string]float64)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed afinn lexicon line: %q", line)
		}
		v, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("malformed afinn valence %q: %w", parts[1], err)
		}
		valences[parts[0]] = float64(v)
	}
	return &valenceLexicon{lexiconName: "afinn", valences: valences}, scanner.Err()
}

func loadWordList(file string) ([]string, error) {
	data, err := dataFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", file, err)
	}
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}
