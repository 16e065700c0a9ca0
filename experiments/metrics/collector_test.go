package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(10, 1.5)
	c.SetTreeReset(true)
	c.AddEpisode(3)
	c.AddEpisode(5)
	c.AddEpisode(2)
	c.AddTerminalPlayout()

	m := c.Complete(12)
	require.Equal(t, 10, m.Playouts)
	require.Equal(t, 1.5, m.Exploration)
	require.Equal(t, 3, m.Episodes)
	require.Equal(t, 1, m.TerminalPlayouts)
	require.Equal(t, 5, m.MaxDepth)
	require.Equal(t, 12, m.RootVisits)
	require.True(t, m.IsTreeReset)

	t.Run("start clears counters", func(t *testing.T) {
		c.Start(10, 1.5)
		m := c.Complete(0)
		require.Zero(t, m.Episodes)
		require.Zero(t, m.MaxDepth)
	})
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start(10, 1)
	c.AddEpisode(4)
	require.Equal(t, SearchMetric{}, c.Complete(10))
}
