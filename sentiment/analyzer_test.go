package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markop/tubepulse.api/models"
)

func TestScore_PositiveText(t *testing.T) {
	a := NewAnalyzer()

	s := a.Score("This video is absolutely amazing, I love it!")

	require.NotNil(t, s)
	assert.Equal(t, LabelPositive, s.Label)
	assert.Equal(t, "en", s.Language)
	assert.Greater(t, s.Compound, 0.0)
}

func TestScore_NegativeText(t *testing.T) {
	a := NewAnalyzer()

	s := a.Score("This is terrible, the worst video I have ever seen. Awful.")

	require.NotNil(t, s)
	assert.Equal(t, LabelNegative, s.Label)
	assert.Less(t, s.Compound, 0.0)
}

func TestScore_NonEnglishIsUnscored(t *testing.T) {
	a := NewAnalyzer()

	s := a.Score("Das ist wirklich ein sehr schlechtes und furchtbares Video gewesen.")

	require.NotNil(t, s)
	assert.Equal(t, LabelUnscored, s.Label)
	assert.Equal(t, "de", s.Language)
	assert.Zero(t, s.Compound)
}

func TestScore_LinkOnlyCommentIsUnscored(t *testing.T) {
	a := NewAnalyzer()

	s := a.Score("https://example.com/watch?v=abc www.example.org")

	require.NotNil(t, s)
	assert.Equal(t, LabelUnscored, s.Label)
	assert.Empty(t, s.Language)
}

func TestAnnotateGroups_ScoresTopLevelAndReplies(t *testing.T) {
	a := NewAnalyzer()
	groups := []models.CommentGroup{
		{
			Comment: models.CommentRecord{ID: "A", Text: "I really love this, great work!"},
			Replies: []models.CommentRecord{
				{ID: "r1", Text: "Horrible take, I hate everything about it."},
			},
		},
	}

	a.AnnotateGroups(groups)

	require.NotNil(t, groups[0].Comment.Sentiment)
	assert.Equal(t, LabelPositive, groups[0].Comment.Sentiment.Label)
	require.NotNil(t, groups[0].Replies[0].Sentiment)
	assert.Equal(t, LabelNegative, groups[0].Replies[0].Sentiment.Label)
}
