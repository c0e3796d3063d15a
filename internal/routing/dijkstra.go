package routing

import (
	"container/heap"
	"context"
	"fmt"

	"flightmap/internal/game/flightplan"
	"flightmap/internal/logging"

	"github.com/labstack/gommon/log"
)

const CANCEL_CHECK_EVERY = 256

type Dijkstra struct {
	graph  *Graph
	logger *log.Logger
}

func NewDijkstra(graph *Graph) *Dijkstra {
	return &Dijkstra{graph: graph, logger: logging.New("routing")}
}

func (d *Dijkstra) PlanRoute(ctx context.Context, origin, destination string) (flightplan.FlightPlan, error) {
	origin, destination = normalize(origin), normalize(destination)

	for _, code := range []string{origin, destination} {
		if !d.graph.Has(code) {
			return flightplan.FlightPlan{}, fmt.Errorf("%w: %q", ErrUnknownAirport, code)
		}
	}

	if origin == destination {
		return flightplan.FlightPlan{
			Origin:      origin,
			Destination: destination,
			Stops:       []string{origin},
			Status:      flightplan.FOUND,
		}, nil
	}

	dist := map[string]float64{origin: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := &queue{}
	heap.Push(pq, &item{code: origin, cost: 0})

	pops := 0
	for pq.Len() > 0 {
		pops++
		if pops%CANCEL_CHECK_EVERY == 0 {
			if err := ctx.Err(); err != nil {
				return flightplan.FlightPlan{}, err
			}
		}

		cur := heap.Pop(pq).(*item)
		if visited[cur.code] {
			continue
		}
		visited[cur.code] = true

		if cur.code == destination {
			plan := flightplan.FlightPlan{
				Origin:          origin,
				Destination:     destination,
				Stops:           walkBack(prev, origin, destination),
				TotalDistanceKm: cur.cost,
				Status:          flightplan.FOUND,
			}
			d.logger.Debugf("route %s -> %s: %d stops, %.0f km", origin, destination, len(plan.Stops), plan.TotalDistanceKm)
			return plan, nil
		}

		for _, e := range d.graph.Neighbors(cur.code) {
			if visited[e.To] {
				continue
			}
			next := cur.cost + e.Distance
			if old, ok := dist[e.To]; ok && old <= next {
				continue
			}
			dist[e.To] = next
			prev[e.To] = cur.code
			heap.Push(pq, &item{code: e.To, cost: next})
		}
	}

	d.logger.Infof("no route from %s to %s", origin, destination)
	return flightplan.NoRoute(origin, destination), nil
}

func walkBack(prev map[string]string, origin, destination string) []string {
	var rev []string
	for at := destination; ; at = prev[at] {
		rev = append(rev, at)
		if at == origin {
			break
		}
	}
	stops := make([]string, len(rev))
	for i, code := range rev {
		stops[len(rev)-1-i] = code
	}
	return stops
}

type item struct {
	code string
	cost float64
}

type queue []*item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].cost == q[j].cost {
		return q[i].code < q[j].code
	}
	return q[i].cost < q[j].cost
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
