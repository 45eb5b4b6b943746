package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/queryprep/pkg/queryprep"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog()
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestAddAndGet(t *testing.T) {
	c := newTestCatalog(t)

	u, err := c.AddUtterance("pre clear trade")
	require.NoError(t, err)
	assert.True(t, u.Enabled)
	assert.NotZero(t, u.ID)

	got, err := c.GetUtterance(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pre clear trade", got.Phrase)

	missing, err := c.GetUtterance(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAddDedup(t *testing.T) {
	c := newTestCatalog(t)

	first, err := c.AddUtterance("annual report")
	require.NoError(t, err)
	second, err := c.AddUtterance("annual report")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	n, err := c.CountUtterances()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEnableDisableDelete(t *testing.T) {
	c := newTestCatalog(t)

	u1, err := c.AddUtterance("pre clear trade")
	require.NoError(t, err)
	u2, err := c.AddUtterance("annual report")
	require.NoError(t, err)

	require.NoError(t, c.SetEnabled(u1.ID, false))

	phrases, err := c.ListEnabledPhrases()
	require.NoError(t, err)
	assert.Equal(t, []string{"annual report"}, phrases)

	require.NoError(t, c.SetEnabled(u1.ID, true))
	phrases, err = c.ListEnabledPhrases()
	require.NoError(t, err)
	assert.Equal(t, []string{"annual report", "pre clear trade"}, phrases)

	require.NoError(t, c.DeleteUtterance(u2.ID))
	all, err := c.ListUtterances()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "pre clear trade", all[0].Phrase)

	assert.Error(t, c.SetEnabled(9999, true))
}

func TestCatalogFeedsBuilder(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.AddUtterance("pre clear trade")
	require.NoError(t, err)

	phrases, err := c.ListEnabledPhrases()
	require.NoError(t, err)

	b := queryprep.New(
		queryprep.WithStopWords("do", "i", "a"),
		queryprep.WithUtterances(phrases...),
	)
	q := b.Prepare("how do i pre clear a trade?")
	assert.Equal(t, []string{"pre clear trade"}, q.UtteranceMatches)
}
