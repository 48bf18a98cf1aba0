package vectorize

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DTM is a document-term matrix: rows are documents, columns are
// vocabulary terms in sorted order, values are raw term counts.
type DTM struct {
	Counts *sparse.CSR
	Terms  []string
}

// BuildDTM re-tokenizes the corpus against the pruned vocabulary and
// counts term occurrences per document. An empty vocabulary is a fatal
// configuration error: every downstream matrix would have zero columns.
func BuildDTM(corpus []string, vocab *Vocabulary) (*DTM, error) {
	if vocab.Size() == 0 {
		return nil, fmt.Errorf(
			"pruned vocabulary is empty: thresholds are too aggressive for a corpus of %d documents",
			len(corpus))
	}

	terms := vocab.TermList()
	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}

	dok := sparse.NewDOK(len(corpus), len(terms))
	for i, doc := range corpus {
		for _, tok := range ContentTokens(doc) {
			j, ok := index[tok]
			if !ok {
				continue
			}
			dok.Set(i, j, dok.At(i, j)+1)
		}
	}

	return &DTM{Counts: dok.ToCSR(), Terms: terms}, nil
}

// TfidfTransformer converts raw term counts into TF-IDF weights.
// The inverse document frequency for each term is log((1+n)/(1+df)),
// applied as a diagonal matrix multiply, followed by L2 normalization
// of every document row. The fitted transform is persistable so new
// documents can be vectorized consistently in later runs.
type TfidfTransformer struct {
	idf   *sparse.DIA
	terms int
}

// NewTfidfTransformer constructs an unfitted transformer.
func NewTfidfTransformer() *TfidfTransformer {
	return &TfidfTransformer{}
}

// Fit computes inverse document frequencies from a document-term matrix.
func (t *TfidfTransformer) Fit(dtm *DTM) *TfidfTransformer {
	n, cols := dtm.Counts.Dims()

	df := make([]int, cols)
	dtm.Counts.DoNonZero(func(_, j int, v float64) {
		if v != 0 {
			df[j]++
		}
	})

	weights := make([]float64, cols)
	for j := 0; j < cols; j++ {
		weights[j] = math.Log(float64(1+n) / float64(1+df[j]))
	}

	t.idf = sparse.NewDIA(cols, cols, weights)
	t.terms = cols
	return t
}

// Transform applies the fitted IDF weights to a count matrix and L2
// normalizes each row. Rows with no in-vocabulary terms stay all-zero.
func (t *TfidfTransformer) Transform(matrix mat.Matrix) (*sparse.CSR, error) {
	if t.idf == nil {
		return nil, fmt.Errorf("tfidf transformer is not fitted")
	}
	_, cols := matrix.Dims()
	if cols != t.terms {
		return nil, fmt.Errorf("matrix has %d columns, transformer was fitted for %d", cols, t.terms)
	}
	if cols == 0 {
		return nil, fmt.Errorf("cannot transform a zero-column matrix")
	}

	if conv, ok := matrix.(sparse.TypeConverter); ok {
		matrix = conv.ToCSR()
	}

	var product sparse.CSR
	product.Mul(matrix, t.idf)

	// L2 normalize each document row in place over the raw CSR storage.
	raw := product.RawMatrix()
	for i := 0; i < raw.I; i++ {
		sum := 0.0
		for j := raw.Indptr[i]; j < raw.Indptr[i+1]; j++ {
			sum += raw.Data[j] * raw.Data[j]
		}
		if sum == 0.0 {
			continue
		}
		norm := math.Sqrt(sum)
		for j := raw.Indptr[i]; j < raw.Indptr[i+1]; j++ {
			raw.Data[j] /= norm
		}
	}

	return &product, nil
}

// FitTransform fits the transformer on the DTM and transforms it.
func (t *TfidfTransformer) FitTransform(dtm *DTM) (*sparse.CSR, error) {
	return t.Fit(dtm).Transform(dtm.Counts)
}

// Save serializes the fitted transform so it can be reloaded in a later
// run for consistent vectorization of new text.
func (t *TfidfTransformer) Save(w io.Writer) error {
	if t.idf == nil {
		return fmt.Errorf("cannot save an unfitted transformer")
	}
	_, err := t.idf.MarshalBinaryTo(w)
	return err
}

// Load deserializes a previously saved transform into the receiver.
func (t *TfidfTransformer) Load(r io.Reader) error {
	var model sparse.DIA
	if _, err := model.UnmarshalBinaryFrom(r); err != nil {
		return err
	}
	t.idf = &model
	rows, _ := model.Dims()
	t.terms = rows
	return nil
}

// SaveFile writes the transformer artifact to path.
func (t *TfidfTransformer) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transformer artifact: %w", err)
	}
	defer f.Close()
	if err := t.Save(f); err != nil {
		return fmt.Errorf("writing transformer artifact: %w", err)
	}
	return nil
}

// LoadTransformerFile reads a transformer artifact from path.
func LoadTransformerFile(path string) (*TfidfTransformer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transformer artifact: %w", err)
	}
	defer f.Close()
	t := NewTfidfTransformer()
	if err := t.Load(f); err != nil {
		return nil, fmt.Errorf("reading transformer artifact: %w", err)
	}
	return t, nil
}
