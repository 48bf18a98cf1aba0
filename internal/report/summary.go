package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/reviewlens/reviewlens/internal/lexicon"
)

// writeSummary composes summary.md and renders it to summary.html.
func writeSummary(reportsDir string, in *Input) ([]string, error) {
	md := composeSummary(in)

	mdPath := filepath.Join(reportsDir, "summary.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	htmlPath := filepath.Join(reportsDir, "summary.html")
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Review analysis summary</title>\n</head>\n<body>\n")
	renderer := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := renderer.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("rendering summary HTML: %w", err)
	}
	buf.WriteString("</body>\n</html>\n")
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary HTML: %w", err)
	}

	return []string{mdPath, htmlPath}, nil
}

func composeSummary(in *Input) string {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Review analysis summary\n\n")
	fmt.Fprintf(&b, "Generated %s.\n\n", time.Now().Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Corpus\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Reviews | %d |\n", len(in.Corpus))
	fmt.Fprintf(&b, "| Vocabulary terms | %d |\n", in.VocabSize)
	fmt.Fprintf(&b, "| Scored terms | %d |\n\n", len(in.TermScores))

	if in.Scores != nil {
		fmt.Fprintf(&b, "## Sentiment labels (bing)\n\n")
		fmt.Fprintf(&b, "| Label | Reviews |\n|---|---|\n")
		counts := lexicon.LabelCounts(in.Scores.LabelsBing)
		for _, l := range []lexicon.Label{lexicon.LabelPositive, lexicon.LabelNeutral, lexicon.LabelNegative} {
			fmt.Fprintf(&b, "| %s | %d |\n", l, counts[l])
		}
		b.WriteString("\n")

		if len(in.Scores.Vader) > 0 {
			fmt.Fprintf(&b, "## VADER\n\n")
			fmt.Fprintf(&b, "Mean compound score over %d reviews: %.4f\n\n",
				len(in.Scores.Vader), mean(in.Scores.Vader))
		}
	}

	if len(in.Agreements) > 0 {
		fmt.Fprintf(&b, "## Lexicon agreement\n\n")
		fmt.Fprintf(&b, "| Pair | Accuracy | Kappa |\n|---|---|---|\n")
		for _, a := range in.Agreements {
			fmt.Fprintf(&b, "| %s / %s | %.3f | %.3f |\n", a.A, a.B, a.Accuracy, a.Kappa)
		}
		b.WriteString("\n")
	}

	if in.Emotions != nil && len(in.Emotions.Categories) > 0 {
		fmt.Fprintf(&b, "## Emotion mentions\n\n")
		fmt.Fprintf(&b, "| Emotion | Mentions |\n|---|---|\n")
		for _, c := range in.Emotions.Categories {
			fmt.Fprintf(&b, "| %s | %d |\n", c, in.Emotions.Totals[c])
		}
		b.WriteString("\n")
	}

	if len(in.TermScores) > 0 {
		n := 10
		if len(in.TermScores) < n {
			n = len(in.TermScores)
		}
		fmt.Fprintf(&b, "## Top terms\n\n")
		fmt.Fprintf(&b, "| Term | Score |\n|---|---|\n")
		for _, s := range in.TermScores[:n] {
			fmt.Fprintf(&b, "| %s | %.4f |\n", s.Term, s.Score)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
