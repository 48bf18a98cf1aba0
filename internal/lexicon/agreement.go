package lexicon

import (
	"github.com/bsm/mlmetrics"
)

// Agreement reports how strongly two lexicons agree on labels.
type Agreement struct {
	A, B     string
	Accuracy float64
	Kappa    float64
}

var labelIndex = map[Label]int{
	LabelNegative: 0,
	LabelNeutral:  1,
	LabelPositive: 2,
}

// LabelAgreement computes pairwise label agreement (raw accuracy and
// Cohen's kappa) between the three lexicon label series.
func LabelAgreement(s *Scores) []Agreement {
	pairs := []struct {
		a, b   string
		la, lb []Label
	}{
		{"syuzhet", "bing", s.LabelsSyuzhet, s.LabelsBing},
		{"syuzhet", "afinn", s.LabelsSyuzhet, s.LabelsAfinn},
		{"bing", "afinn", s.LabelsBing, s.LabelsAfinn},
	}

	agreements := make([]Agreement, 0, len(pairs))
	for _, p := range pairs {
		m := mlmetrics.NewConfusionMatrix()
		for i := range p.la {
			m.Observe(labelIndex[p.la[i]], labelIndex[p.lb[i]])
		}
		agreements = append(agreements, Agreement{
			A:        p.a,
			B:        p.b,
			Accuracy: m.Accuracy(),
			Kappa:    m.Kappa(),
		})
	}
	return agreements
}
