package termscore

import (
	"errors"
	"math"
	"testing"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

var testTerms = []string{"bed", "clean", "room"}

// testMatrix returns the same logical data as a sparse matrix, a dense
// matrix, and a named vector of column sums.
func testInputs() (*sparse.CSR, *mat.Dense, NamedVector) {
	data := []float64{
		1, 0, 2,
		0, 3, 1,
		2, 0, 0,
	}
	dense := mat.NewDense(3, 3, data)

	dok := sparse.NewDOK(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if v := data[i*3+j]; v != 0 {
				dok.Set(i, j, v)
			}
		}
	}

	nv := NamedVector{"bed": 3, "clean": 3, "room": 3}
	return dok.ToCSR(), dense, nv
}

func scoresByTerm(scores []TermScore) map[string]float64 {
	m := make(map[string]float64, len(scores))
	for _, s := range scores {
		m[s.Term] = s.Score
	}
	return m
}

func TestRepresentationIndependence(t *testing.T) {
	csr, dense, nv := testInputs()

	fromSparse, err := Extract(csr, testTerms)
	if err != nil {
		t.Fatalf("sparse extract: %v", err)
	}
	fromDense, err := Extract(dense, testTerms)
	if err != nil {
		t.Fatalf("dense extract: %v", err)
	}
	fromNamed, err := Extract(nv, testTerms)
	if err != nil {
		t.Fatalf("named extract: %v", err)
	}

	s, d, n := scoresByTerm(fromSparse), scoresByTerm(fromDense), scoresByTerm(fromNamed)
	for _, term := range testTerms {
		if math.Abs(s[term]-d[term]) > 1e-12 || math.Abs(s[term]-n[term]) > 1e-12 {
			t.Errorf("term %q: sparse %v, dense %v, named %v", term, s[term], d[term], n[term])
		}
	}
}

func TestExtractSortsDescending(t *testing.T) {
	_, dense, _ := testInputs()
	scores, err := Extract(dense, testTerms)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores not descending at %d: %v", i, scores)
		}
	}
}

// panickyMatrix claims to support non-zero iteration but blows up,
// while still being a valid dense matrix.
type panickyMatrix struct {
	*mat.Dense
}

func (p panickyMatrix) DoNonZero(fn func(i, j int, v float64)) {
	panic("corrupt sparse structure")
}

func TestStrategyPanicFallsThrough(t *testing.T) {
	_, dense, _ := testInputs()
	p := panickyMatrix{dense}

	scores, err := Extract(p, testTerms)
	if err != nil {
		t.Fatalf("expected fallthrough to dense strategy, got %v", err)
	}
	want := scoresByTerm(scores)
	if want["bed"] != 3 || want["clean"] != 3 || want["room"] != 3 {
		t.Errorf("unexpected sums after fallthrough: %v", want)
	}
}

// bareGrid has Dims/At but is not a mat.Matrix (no T method), so only
// the forced-coercion strategy can handle it.
type bareGrid struct {
	rows, cols int
	data       []float64
}

func (g bareGrid) Dims() (int, int)    { return g.rows, g.cols }
func (g bareGrid) At(i, j int) float64 { return g.data[i*g.cols+j] }

func TestForcedCoercionStrategy(t *testing.T) {
	g := bareGrid{rows: 2, cols: 2, data: []float64{1, 2, 3, 4}}
	scores, err := Extract(g, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	byTerm := scoresByTerm(scores)
	if byTerm["a"] != 4 || byTerm["b"] != 6 {
		t.Errorf("unexpected coerced sums: %v", byTerm)
	}
}

func TestAllStrategiesFailReturnsSentinel(t *testing.T) {
	_, err := Extract("not a matrix", testTerms)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	_, err = Extract(nil, testTerms)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for nil input, got %v", err)
	}

	_, err = Extract(NamedVector{}, testTerms)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for empty named vector, got %v", err)
	}
}

func TestFallbackToVocabularyCounts(t *testing.T) {
	counts := map[string]float64{"room": 10, "clean": 5}
	scores, err := ExtractWithFallback("garbage", nil, counts)
	if err != nil {
		t.Fatalf("ExtractWithFallback: %v", err)
	}
	if len(scores) != 2 || scores[0].Term != "room" || scores[0].Score != 10 {
		t.Errorf("unexpected fallback scores: %v", scores)
	}
}

func TestFallbackExhausted(t *testing.T) {
	_, err := ExtractWithFallback("garbage", nil, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable when fallback also missing, got %v", err)
	}
}
