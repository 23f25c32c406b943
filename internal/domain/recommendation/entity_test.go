package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackType_Valid(t *testing.T) {
	for _, ft := range []FeedbackType{"like", "dislike", "applied", "not_interested", "saved"} {
		assert.True(t, ft.Valid(), ft)
	}
	for _, ft := range []FeedbackType{"", "LIKE", "love", "not interested"} {
		assert.False(t, ft.Valid(), ft)
	}
}
