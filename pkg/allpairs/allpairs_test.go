package allpairs

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/degrees/pkg/bfs"
	"github.com/matzehuels/degrees/pkg/graph"
	"github.com/matzehuels/degrees/pkg/stats"
)

func run(t *testing.T, g *graph.Graph, workers int) *stats.Accumulator {
	t.Helper()
	acc, err := Run(context.Background(), g, Options{Workers: workers})
	require.NoError(t, err)
	return acc
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		adj      [][]int
		wantHist map[int]int64
		wantMean float64
		wantMax  int
	}{
		{
			name:     "triangle",
			adj:      [][]int{{1, 2}, {0, 2}, {0, 1}},
			wantHist: map[int]int64{1: 6},
			wantMean: 1,
			wantMax:  1,
		},
		{
			name:     "path",
			adj:      [][]int{{1}, {0, 2}, {1, 3}, {2}},
			wantHist: map[int]int64{1: 6, 2: 4, 3: 2},
			wantMean: 20.0 / 12.0,
			wantMax:  3,
		},
		{
			name:     "disconnected",
			adj:      [][]int{{1}, {0}, {3}, {2}},
			wantHist: map[int]int64{1: 4},
			wantMean: 1,
			wantMax:  1,
		},
	}

	for _, tt := range tests {
		for _, workers := range []int{1, 4} {
			t.Run(tt.name, func(t *testing.T) {
				acc := run(t, graph.New(tt.adj), workers)

				assert.Equal(t, tt.wantHist, acc.Histogram())
				assert.Equal(t, tt.wantMax, acc.Max())

				mean, ok := acc.Mean()
				require.True(t, ok)
				assert.InDelta(t, tt.wantMean, mean, 1e-12)

				pct, ok := acc.PercentageWithin(stats.DefaultThreshold)
				require.True(t, ok)
				assert.Equal(t, 100.0, pct)
			})
		}
	}
}

func TestTriangleStdDevZero(t *testing.T) {
	acc := run(t, graph.New([][]int{{1, 2}, {0, 2}, {0, 1}}), 1)
	sd, ok := acc.StdDev()
	require.True(t, ok)
	assert.Equal(t, 0.0, sd)
}

func TestDegenerateGraphs(t *testing.T) {
	tests := []struct {
		name string
		adj  [][]int
	}{
		{"empty", nil},
		{"single node", [][]int{{}}},
		{"single node with self loop", [][]int{{0}}},
		{"no edges", [][]int{{}, {}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := run(t, graph.New(tt.adj), 3)
			assert.Equal(t, int64(0), acc.Count())
			_, ok := acc.Mean()
			assert.False(t, ok)
			_, ok = acc.StdDev()
			assert.False(t, ok)
			_, ok = acc.PercentageWithin(stats.DefaultThreshold)
			assert.False(t, ok)
		})
	}
}

func TestCountsEveryReachablePairOnce(t *testing.T) {
	g := randomGraph(rand.New(rand.NewPCG(5, 8)), 45, 110)
	acc := run(t, g, 1)

	var want int64
	for i := 0; i < g.NodeCount(); i++ {
		for j := 0; j < g.NodeCount(); j++ {
			if i == j {
				continue
			}
			if _, ok := bfs.Distance(g, i, j); ok {
				want++
			}
		}
	}
	assert.Equal(t, want, acc.Count())
}

func TestParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 20))
	for trial := 0; trial < 4; trial++ {
		g := randomGraph(rng, 80, 200)
		seq := run(t, g, 1)
		for _, workers := range []int{2, 3, 8, 200} {
			par := run(t, g, workers)
			assert.Equal(t, seq.Histogram(), par.Histogram())
			assert.Equal(t, seq.Count(), par.Count())
			assert.Equal(t, seq.Sum(), par.Sum())
			assert.Equal(t, seq.Max(), par.Max())
		}
	}
}

func TestProgress(t *testing.T) {
	g := graph.New([][]int{{1}, {0, 2}, {1, 3}, {2}})

	for _, workers := range []int{1, 3} {
		var mu sync.Mutex
		var calls []int
		_, err := Run(context.Background(), g, Options{
			Workers: workers,
			Progress: func(done, total int) {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, 4, total)
				calls = append(calls, done)
			},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2, 3, 4}, calls)
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := graph.New([][]int{{1}, {0}})
	for _, workers := range []int{1, 2} {
		acc, err := Run(ctx, g, Options{Workers: workers})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, acc)
	}
}

func randomGraph(rng *rand.Rand, n, m int) *graph.Graph {
	adj := make([][]int, n)
	for i := 0; i < m; i++ {
		a, b := rng.IntN(n), rng.IntN(n)
		adj[a] = append(adj[a], b)
	}
	return graph.New(adj)
}
