package vectorize

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
)

var testCorpus = []string{
	"the room was clean and the bed was comfortable",
	"clean room comfortable bed friendly staff",
	"staff were rude and the room was dirty",
	"dirty bathroom rude staff never again",
	"comfortable bed clean bathroom great location",
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Great stay, loved it!", []string{"great", "stay", "loved", "it"}},
		{"room-service was 5/5", []string{"room", "service", "was", "5", "5"}},
		{"don't worry", []string{"don't", "worry"}},
		{"'quoted'", []string{"quoted"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestContentTokensDropsStopwords(t *testing.T) {
	got := ContentTokens("the room was very clean")
	for _, tok := range got {
		if tok == "the" || tok == "was" || tok == "very" {
			t.Errorf("stopword %q survived filtering", tok)
		}
	}
	found := false
	for _, tok := range got {
		if tok == "clean" {
			found = true
		}
	}
	if !found {
		t.Error("content word 'clean' missing")
	}
}

func TestBuildVocabularyCounts(t *testing.T) {
	v := BuildVocabulary(testCorpus)
	if v.NumDocs != len(testCorpus) {
		t.Errorf("NumDocs = %d, want %d", v.NumDocs, len(testCorpus))
	}

	stats, ok := v.Terms["room"]
	if !ok {
		t.Fatal("expected 'room' in vocabulary")
	}
	if stats.Count != 3 || stats.DocFreq != 3 {
		t.Errorf("room stats = %+v, want count 3, docfreq 3", stats)
	}

	if _, ok := v.Terms["the"]; ok {
		t.Error("stopword 'the' should not enter the vocabulary")
	}
}

func TestPruneThresholds(t *testing.T) {
	v := BuildVocabulary(testCorpus)

	pruned := v.Prune(2, 0, 1.0)
	if _, ok := pruned.Terms["location"]; ok {
		t.Error("'location' occurs once and should be pruned at min count 2")
	}
	if _, ok := pruned.Terms["clean"]; !ok {
		t.Error("'clean' occurs three times and should survive min count 2")
	}

	// max doc proportion excludes near-universal terms
	lowMax := v.Prune(1, 0, 0.5)
	if _, ok := lowMax.Terms["staff"]; ok {
		t.Error("'staff' appears in 3/5 docs and should be pruned at max proportion 0.5")
	}
}

func TestPruneIdempotent(t *testing.T) {
	v := BuildVocabulary(testCorpus)
	once := v.Prune(2, 0.1, 0.8)
	twice := once.Prune(2, 0.1, 0.8)

	if once.Size() != twice.Size() {
		t.Fatalf("re-pruning changed size: %d -> %d", once.Size(), twice.Size())
	}
	for term := range once.Terms {
		if _, ok := twice.Terms[term]; !ok {
			t.Errorf("term %q lost on re-prune", term)
		}
	}
}

func TestBuildDTMCounts(t *testing.T) {
	v := BuildVocabulary(testCorpus)
	dtm, err := BuildDTM(testCorpus, v)
	if err != nil {
		t.Fatalf("BuildDTM: %v", err)
	}

	rows, cols := dtm.Counts.Dims()
	if rows != len(testCorpus) || cols != v.Size() {
		t.Fatalf("dims = %dx%d, want %dx%d", rows, cols, len(testCorpus), v.Size())
	}

	roomCol := -1
	for j, term := range dtm.Terms {
		if term == "room" {
			roomCol = j
		}
	}
	if roomCol < 0 {
		t.Fatal("'room' column missing")
	}
	if got := dtm.Counts.At(0, roomCol); got != 1 {
		t.Errorf("doc 0 'room' count = %v, want 1", got)
	}
	if got := dtm.Counts.At(3, roomCol); got != 0 {
		t.Errorf("doc 3 'room' count = %v, want 0", got)
	}
}

func TestBuildDTMEmptyVocabulary(t *testing.T) {
	v := BuildVocabulary(testCorpus).Prune(1000000, 0, 1.0)
	_, err := BuildDTM(testCorpus, v)
	if err == nil {
		t.Fatal("expected descriptive error for empty pruned vocabulary")
	}
	if !strings.Contains(err.Error(), "vocabulary is empty") {
		t.Errorf("error should describe the empty vocabulary: %v", err)
	}
}

func TestTfidfRowNorms(t *testing.T) {
	v := BuildVocabulary(testCorpus)
	dtm, err := BuildDTM(testCorpus, v)
	if err != nil {
		t.Fatalf("BuildDTM: %v", err)
	}

	tfidf, err := NewTfidfTransformer().FitTransform(dtm)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	rows, cols := tfidf.Dims()
	for i := 0; i < rows; i++ {
		var norm float64
		for j := 0; j < cols; j++ {
			val := tfidf.At(i, j)
			norm += val * val
		}
		norm = math.Sqrt(norm)
		if math.Abs(norm-1.0) > 1e-9 && norm != 0 {
			t.Errorf("row %d norm = %v, want 1.0 or 0", i, norm)
		}
	}
}

func TestTfidfZeroRowForOutOfVocabularyDoc(t *testing.T) {
	v := BuildVocabulary(testCorpus).Prune(2, 0, 1.0)
	corpus := append(append([]string{}, testCorpus...), "zzz qqq xxx")
	dtm, err := BuildDTM(corpus, v)
	if err != nil {
		t.Fatalf("BuildDTM: %v", err)
	}

	tfidf, err := NewTfidfTransformer().FitTransform(dtm)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	last := len(corpus) - 1
	_, cols := tfidf.Dims()
	for j := 0; j < cols; j++ {
		if tfidf.At(last, j) != 0 {
			t.Fatalf("expected all-zero row for out-of-vocabulary document")
		}
	}
}

func TestTransformDimensionMismatch(t *testing.T) {
	v := BuildVocabulary(testCorpus)
	dtm, _ := BuildDTM(testCorpus, v)
	tr := NewTfidfTransformer().Fit(dtm)

	smaller := v.Prune(3, 0, 1.0)
	dtm2, err := BuildDTM(testCorpus, smaller)
	if err != nil {
		t.Fatalf("BuildDTM: %v", err)
	}
	if _, err := tr.Transform(dtm2.Counts); err == nil {
		t.Error("expected error for column count mismatch")
	}
}

func TestTransformUnfitted(t *testing.T) {
	v := BuildVocabulary(testCorpus)
	dtm, _ := BuildDTM(testCorpus, v)
	if _, err := NewTfidfTransformer().Transform(dtm.Counts); err == nil {
		t.Error("expected error for unfitted transformer")
	}
}

func TestVocabularyArtifactRoundTrip(t *testing.T) {
	v := BuildVocabulary(testCorpus).Prune(2, 0, 1.0)
	path := filepath.Join(t.TempDir(), "vocabulary.json")
	if err := v.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	if loaded.Size() != v.Size() || loaded.NumDocs != v.NumDocs {
		t.Errorf("loaded vocabulary differs: %d/%d vs %d/%d",
			loaded.Size(), loaded.NumDocs, v.Size(), v.NumDocs)
	}
}

func TestTransformerArtifactRoundTrip(t *testing.T) {
	v := BuildVocabulary(testCorpus)
	dtm, _ := BuildDTM(testCorpus, v)
	tr := NewTfidfTransformer().Fit(dtm)

	path := filepath.Join(t.TempDir(), "tfidf.bin")
	if err := tr.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	loaded, err := LoadTransformerFile(path)
	if err != nil {
		t.Fatalf("LoadTransformerFile: %v", err)
	}

	orig, err := tr.Transform(dtm.Counts)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	reloaded, err := loaded.Transform(dtm.Counts)
	if err != nil {
		t.Fatalf("Transform after reload: %v", err)
	}

	rows, cols := orig.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if math.Abs(orig.At(i, j)-reloaded.At(i, j)) > 1e-12 {
				t.Fatalf("reloaded transformer differs at (%d,%d)", i, j)
			}
		}
	}
}
