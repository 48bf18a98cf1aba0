// Package termscore computes per-term aggregate scores from matrix-like
// containers of unknown concrete representation. Matrices produced by
// different vectorization paths arrive as sparse matrices, dense
// matrices, or already-aggregated named vectors; the extractor probes a
// fixed chain of typed adapters until one of them yields a usable
// column-sum result.
package termscore

import (
	"errors"
	"log"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// ErrUnavailable is the sentinel returned when no extraction strategy
// applies to the input. Callers degrade to a weaker signal (raw
// vocabulary counts) before giving up.
var ErrUnavailable = errors.New("termscore: no extraction strategy applies")

// TermScore pairs a term with its aggregate score.
type TermScore struct {
	Term  string
	Score float64
}

// NamedVector is a flat numeric vector with element names, treated as
// already being per-term scores.
type NamedVector map[string]float64

// columnSummer is a single extraction strategy. Each adapter reports
// whether it could produce column sums for the input; a false return or
// a panic inside Sum causes fallthrough to the next adapter.
type columnSummer interface {
	name() string
	sum(input any) ([]float64, bool)
}

// adapters are tried in strict priority order.
var adapters = []columnSummer{
	sparseSummer{},
	denseSummer{},
	namedVectorSummer{},
	coerceSummer{},
}

// Extract computes per-column sums for a matrix-like input, attaching
// the provided term names when the result is positional. Each strategy
// runs under fault isolation: a panic inside one adapter moves on to
// the next instead of aborting the chain. If every strategy fails or
// yields an empty result, Extract returns ErrUnavailable.
func Extract(input any, terms []string) ([]TermScore, error) {
	if input == nil {
		return nil, ErrUnavailable
	}

	// Named vectors carry their own term names and bypass positional naming.
	if nv, ok := input.(NamedVector); ok {
		if len(nv) == 0 {
			return nil, ErrUnavailable
		}
		return sortedScores(nv), nil
	}

	for _, adapter := range adapters {
		sums, ok := trySum(adapter, input)
		if !ok || len(sums) == 0 {
			continue
		}
		return named(sums, terms), nil
	}
	return nil, ErrUnavailable
}

// trySum runs one adapter with panic isolation.
func trySum(adapter columnSummer, input any) (sums []float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("term score strategy %q failed (%v), falling through", adapter.name(), r)
			sums, ok = nil, false
		}
	}()
	return adapter.sum(input)
}

// sparseSummer sums columns of a sparse matrix by iterating only the
// stored non-zero entries.
type sparseSummer struct{}

func (sparseSummer) name() string { return "sparse" }

func (sparseSummer) sum(input any) ([]float64, bool) {
	type nonZeroDoer interface {
		mat.Matrix
		DoNonZero(fn func(i, j int, v float64))
	}
	m, ok := input.(nonZeroDoer)
	if !ok {
		return nil, false
	}
	_, cols := m.Dims()
	sums := make([]float64, cols)
	m.DoNonZero(func(_, j int, v float64) {
		sums[j] += v
	})
	return sums, true
}

// denseSummer sums columns of any two-dimensional numeric structure
// that is not recognizably sparse.
type denseSummer struct{}

func (denseSummer) name() string { return "dense" }

func (denseSummer) sum(input any) ([]float64, bool) {
	m, ok := input.(mat.Matrix)
	if !ok {
		return nil, false
	}
	if _, sparse := input.(sparse.Sparser); sparse {
		return nil, false
	}
	rows, cols := m.Dims()
	sums := make([]float64, cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			sums[j] += m.At(i, j)
		}
	}
	return sums, true
}

// namedVectorSummer passes through flat named vectors. The fast path in
// Extract normally handles these; this adapter keeps the chain complete
// for inputs arriving as map values.
type namedVectorSummer struct{}

func (namedVectorSummer) name() string { return "named-vector" }

func (namedVectorSummer) sum(input any) ([]float64, bool) {
	nv, ok := input.(map[string]float64)
	if !ok || len(nv) == 0 {
		return nil, false
	}
	// Positional order is the sorted term order used everywhere else.
	terms := make([]string, 0, len(nv))
	for t := range nv {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	sums := make([]float64, len(terms))
	for i, t := range terms {
		sums[i] = nv[t]
	}
	return sums, true
}

// coerceSummer force-coerces anything exposing raw float data into a
// dense matrix and sums its columns. Last resort.
type coerceSummer struct{}

func (coerceSummer) name() string { return "coerce" }

func (coerceSummer) sum(input any) ([]float64, bool) {
	type rawer interface {
		Dims() (int, int)
		At(i, j int) float64
	}
	m, ok := input.(rawer)
	if !ok {
		return nil, false
	}
	dense := mat.DenseCopyOf(shim{m})
	rows, cols := dense.Dims()
	sums := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sums[j] += dense.At(i, j)
		}
	}
	return sums, true
}

// shim adapts a Dims/At pair into a full mat.Matrix.
type shim struct {
	m interface {
		Dims() (int, int)
		At(i, j int) float64
	}
}

func (s shim) Dims() (int, int)    { return s.m.Dims() }
func (s shim) At(i, j int) float64 { return s.m.At(i, j) }
func (s shim) T() mat.Matrix       { return mat.Transpose{Matrix: s} }

// named attaches positional term names and sorts descending by score.
func named(sums []float64, terms []string) []TermScore {
	scores := make([]TermScore, len(sums))
	for i, s := range sums {
		name := ""
		if i < len(terms) {
			name = terms[i]
		}
		scores[i] = TermScore{Term: name, Score: s}
	}
	sortDescending(scores)
	return scores
}

func sortedScores(nv NamedVector) []TermScore {
	scores := make([]TermScore, 0, len(nv))
	for term, score := range nv {
		scores = append(scores, TermScore{Term: term, Score: score})
	}
	sortDescending(scores)
	return scores
}

func sortDescending(scores []TermScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Term < scores[j].Term
	})
}

// ExtractWithFallback runs the adapter chain and, when the input yields
// nothing, degrades to raw vocabulary term counts. Exhausting both is a
// fatal configuration error for the caller.
func ExtractWithFallback(input any, terms []string, vocabCounts map[string]float64) ([]TermScore, error) {
	scores, err := Extract(input, terms)
	if err == nil {
		return scores, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return nil, err
	}
	if len(vocabCounts) == 0 {
		return nil, ErrUnavailable
	}
	return sortedScores(NamedVector(vocabCounts)), nil
}
