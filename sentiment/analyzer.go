package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/pemistahl/lingua-go"

	"github.com/markop/tubepulse.api/models"
)

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"

	// LabelUnscored marks comments the VADER lexicon cannot score
	// (non-English, or nothing left after stripping links).
	LabelUnscored = "unscored"
)

// Compound score thresholds for the positive/negative labels.
const labelThreshold = 0.20

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

type Analyzer struct {
	vader    *govader.SentimentIntensityAnalyzer
	detector lingua.LanguageDetector
}

func NewAnalyzer() *Analyzer {
	// A small candidate set keeps detection fast; anything outside it
	// maps to the closest candidate and still fails the English gate.
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.German,
			lingua.Spanish,
			lingua.French,
			lingua.Portuguese,
			lingua.Japanese,
		).
		Build()

	return &Analyzer{
		vader:    govader.NewSentimentIntensityAnalyzer(),
		detector: detector,
	}
}

// Score rates one comment text. VADER's lexicon is English-only, so
// non-English comments come back with their detected language and the
// unscored label instead of misleading zero-ish scores.
func (a *Analyzer) Score(text string) *models.Sentiment {
	plain := strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
	if plain == "" {
		return &models.Sentiment{Label: LabelUnscored}
	}

	s := &models.Sentiment{}
	lang, ok := a.detector.DetectLanguageOf(plain)
	if ok {
		s.Language = strings.ToLower(lang.IsoCode639_1().String())
	}
	if ok && lang != lingua.English {
		s.Label = LabelUnscored
		return s
	}

	scores := a.vader.PolarityScores(plain)
	s.Compound = scores.Compound
	s.Positive = scores.Positive
	s.Negative = scores.Negative
	s.Neutral = scores.Neutral
	s.Label = label(scores.Compound)
	return s
}

func (a *Analyzer) AnnotateGroups(groups []models.CommentGroup) {
	for i := range groups {
		groups[i].Comment.Sentiment = a.Score(groups[i].Comment.Text)
		for j := range groups[i].Replies {
			groups[i].Replies[j].Sentiment = a.Score(groups[i].Replies[j].Text)
		}
	}
}

func (a *Analyzer) AnnotateComments(comments []models.CommentRecord) {
	for i := range comments {
		comments[i].Sentiment = a.Score(comments[i].Text)
	}
}

func label(compound float64) string {
	switch {
	case compound >= labelThreshold:
		return LabelPositive
	case compound <= -labelThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
