package artifact

import (
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/queryprep/pkg/queryprep"
)

const sample = `{
	"version": 1,
	"tokens": ["pre", "clear", "trade", "annual", "report"],
	"phrases": [[0, 1, 2], [3, 4]]
}`

func TestDecode(t *testing.T) {
	a, err := Decode([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 1, a.Version)
	assert.Len(t, a.Tokens, 5)

	want := [][]string{
		{"pre", "clear", "trade"},
		{"annual", "report"},
	}
	assert.Equal(t, want, a.Expand())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"wrong version", `{"version": 2, "tokens": [], "phrases": []}`},
		{"index out of range", `{"version": 1, "tokens": ["a"], "phrases": [[1]]}`},
		{"negative index", `{"version": 1, "tokens": ["a"], "phrases": [[-1]]}`},
		{"empty phrase", `{"version": 1, "tokens": ["a"], "phrases": [[]]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.WriteFullFile(fs, "utterances.json", []byte(sample), 0644))

	a, err := Load(fs, "utterances.json")
	require.NoError(t, err)

	// Expanded phrases feed the builder directly.
	b := queryprep.New(
		queryprep.WithStopWords("do", "i", "a"),
		queryprep.WithTokenizedUtterances(a.Expand()),
	)
	q := b.Prepare("how do i pre clear a trade?")
	assert.Equal(t, []string{"pre clear trade"}, q.UtteranceMatches)
}

func TestLoadMissingFile(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)

	_, err = Load(fs, "missing.json")
	assert.Error(t, err)
}
