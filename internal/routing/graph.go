package routing

import (
	"sort"
	"strings"
	"sync"

	"flightmap/internal/game/airspace"
	"flightmap/internal/geo"
)

type Edge struct {
	To       string
	Distance float64
}

// Graph connects every pair of directory airports closer than maxLegKm,
// weighted by great-circle distance, plus any edges added explicitly.
// Neighbours are computed on first use and memoized.
type Graph struct {
	dir      *airspace.Directory
	maxLegKm float64

	mu       sync.Mutex
	explicit map[string]map[string]float64
	adj      map[string][]Edge
}

func NewGraph(dir *airspace.Directory, maxLegKm float64) *Graph {
	return &Graph{
		dir:      dir,
		maxLegKm: maxLegKm,
		explicit: make(map[string]map[string]float64),
		adj:      make(map[string][]Edge),
	}
}

// AddEdge adds an undirected edge with a fixed weight, overriding the
// computed distance for that pair.
func (g *Graph) AddEdge(a, b string, distance float64) {
	a, b = normalize(a), normalize(b)

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, pair := range [][2]string{{a, b}, {b, a}} {
		m, ok := g.explicit[pair[0]]
		if !ok {
			m = make(map[string]float64)
			g.explicit[pair[0]] = m
		}
		m[pair[1]] = distance
	}
	// explicit edges change neighbour lists of both ends
	delete(g.adj, a)
	delete(g.adj, b)
}

func (g *Graph) Has(code string) bool {
	code = normalize(code)
	if _, ok := g.dir.Lookup(code); ok {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.explicit[code]
	return ok
}

func (g *Graph) Neighbors(code string) []Edge {
	code = normalize(code)

	g.mu.Lock()
	defer g.mu.Unlock()

	if edges, ok := g.adj[code]; ok {
		return edges
	}

	weights := make(map[string]float64)
	if from, ok := g.dir.Lookup(code); ok && g.maxLegKm > 0 {
		for i := 0; i < g.dir.Len(); i++ {
			to := g.dir.At(i)
			if to.Code == from.Code {
				continue
			}
			d := geo.GreatCircleDistance(from.Position(), to.Position())
			if d <= g.maxLegKm {
				weights[string(to.Code)] = d
			}
		}
	}
	for to, d := range g.explicit[code] {
		weights[to] = d
	}

	edges := make([]Edge, 0, len(weights))
	for to, d := range weights {
		edges = append(edges, Edge{To: to, Distance: d})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].To < edges[j].To })

	g.adj[code] = edges
	return edges
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
