package resume

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyProfile_MarshalsArrays(t *testing.T) {
	b, err := json.Marshal(EmptyProfile())
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"skills":[]`)
	assert.Contains(t, s, `"experience":[]`)
	assert.Contains(t, s, `"education":[]`)
	assert.Contains(t, s, `"summary":null`)
}

func TestEmbeddingInput_Truncates(t *testing.T) {
	summary := "Backend engineer"
	p := EmptyProfile()
	p.Summary = &summary

	assert.Equal(t, "Backend engineer raw", EmbeddingInput(p, "raw"))

	long := strings.Repeat("a", 9000)
	assert.Len(t, EmbeddingInput(EmptyProfile(), long), maxEmbeddingRunes)

	accented := EmbeddingInput(EmptyProfile(), strings.Repeat("é", 9000))
	assert.Equal(t, maxEmbeddingRunes, utf8.RuneCountInString(accented))
	assert.True(t, utf8.ValidString(accented))
}

func TestIsSupportedMime(t *testing.T) {
	assert.True(t, IsSupportedMime(MimePDF))
	assert.True(t, IsSupportedMime(MimeDOCX))
	assert.False(t, IsSupportedMime("text/plain"))
	assert.False(t, IsSupportedMime("application/msword"))
}
