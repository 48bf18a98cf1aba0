package lexicon

import (
	"github.com/jonreiter/govader"
)

// Scores holds the per-document score series for every lexicon, the
// derived labels, and the VADER compound series.
type Scores struct {
	Syuzhet []float64
	Bing    []float64
	Afinn   []float64
	Vader   []float64

	LabelsSyuzhet []Label
	LabelsBing    []Label
	LabelsAfinn   []Label
}

// ScoreCorpus applies the three lexicons and the VADER analyzer to
// every document independently.
func (s *Set) ScoreCorpus(corpus []string) *Scores {
	n := len(corpus)
	scores := &Scores{
		Syuzhet:       make([]float64, n),
		Bing:          make([]float64, n),
		Afinn:         make([]float64, n),
		Vader:         make([]float64, n),
		LabelsSyuzhet: make([]Label, n),
		LabelsBing:    make([]Label, n),
		LabelsAfinn:   make([]Label, n),
	}

	analyzer := govader.NewSentimentIntensityAnalyzer()

	for i, doc := range corpus {
		scores.Syuzhet[i] = s.Syuzhet.Score(doc)
		scores.Bing[i] = s.Bing.Score(doc)
		scores.Afinn[i] = s.Afinn.Score(doc)
		scores.Vader[i] = analyzer.PolarityScores(doc).Compound

		scores.LabelsSyuzhet[i] = LabelFromScore(scores.Syuzhet[i])
		scores.LabelsBing[i] = LabelFromScore(scores.Bing[i])
		scores.LabelsAfinn[i] = LabelFromScore(scores.Afinn[i])
	}
	return scores
}

// LabelCounts tallies how many documents carry each label in a series.
func LabelCounts(labels []Label) map[Label]int {
	counts := make(map[Label]int, 3)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}
