// Package drawer renders the chain of a job as a Graphviz DOT graph.
//
// Stages are drawn in chain order. Once a drawer observes runs of the job,
// each stage is labelled with its average duration and coloured on a ramp
// going from blue for the fastest stage to red for the slowest one.
package drawer

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1"

	fblock "github.com/YuukanOO/FBlock"
)

const maxRGB = 240

// Source is the part of a job a Drawer needs.
type Source interface {
	Name() fblock.Name
	Names() []fblock.Name
	OnStageComplete(handler func(context.Context, fblock.JobEvent) error) error
}

type stageStats struct {
	name  fblock.Name
	total time.Duration
	count int
}

func (s stageStats) average() time.Duration {
	if s.count == 0 {
		return 0
	}
	return s.total / time.Duration(s.count)
}

// Drawer draws one job.
type Drawer struct {
	source Source

	mu    sync.Mutex
	stats map[int]stageStats
}

// New creates a drawer for source. Call Observe to collect durations.
func New(source Source) *Drawer {
	return &Drawer{
		source: source,
		stats:  make(map[int]stageStats),
	}
}

// Observe subscribes the drawer to the stage events of its job.
func (d *Drawer) Observe() error {
	err := d.source.OnStageComplete(func(_ context.Context, event fblock.JobEvent) error {
		d.Record(event)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "unable to subscribe to stage events")
	}
	return nil
}

// Record adds the duration of one stage run. Events of failed stages count
// as well.
func (d *Drawer) Record(event fblock.JobEvent) {
	if event.StageNumber <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.stats[event.StageNumber]
	if s.name != event.Stage {
		s = stageStats{name: event.Stage}
	}
	s.total += event.Duration
	s.count++
	d.stats[event.StageNumber] = s
}

// Draw writes the DOT graph of the job's current chain to w.
func (d *Drawer) Draw(w io.Writer) error {
	names := d.source.Names()
	colours, err := d.colours(names)
	if err != nil {
		return err
	}

	g := graph.New(graph.StringHash, graph.Directed(), graph.Acyclic())

	prev := ""
	for i, name := range names {
		vertex := vertexName(i+1, name)
		options := []func(*graph.VertexProperties){
			graph.VertexAttribute("shape", "box"),
		}
		if avg, ok := d.average(i+1, name); ok {
			options = append(options,
				graph.VertexAttribute("xlabel", avg.String()),
				graph.VertexAttribute("color", colours[i+1]),
			)
		}

		if err := g.AddVertex(vertex, options...); err != nil {
			return errors.Wrapf(err, "unable to add vertex %s", vertex)
		}
		if prev != "" {
			if err := g.AddEdge(prev, vertex); err != nil {
				return errors.Wrapf(err, "unable to add edge from %s to %s", prev, vertex)
			}
		}
		prev = vertex
	}

	if err := draw.DOT(g, w, draw.GraphAttribute("label", d.source.Name())); err != nil {
		return errors.Wrap(err, "unable to render dot")
	}
	return nil
}

func (d *Drawer) average(number int, name fblock.Name) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.stats[number]
	if !ok || s.name != name || s.count == 0 {
		return 0, false
	}
	return s.average(), true
}

// colours maps stage numbers with recorded runs to a hex colour.
func (d *Drawer) colours(names []fblock.Name) (map[int]string, error) {
	averages := make(map[int]time.Duration)
	for i, name := range names {
		if avg, ok := d.average(i+1, name); ok {
			averages[i+1] = avg
		}
	}

	result := make(map[int]string, len(averages))
	if len(averages) == 0 {
		return result, nil
	}

	minValue, maxValue := time.Duration(-1), time.Duration(0)
	for _, avg := range averages {
		if minValue < 0 || avg < minValue {
			minValue = avg
		}
		if avg > maxValue {
			maxValue = avg
		}
	}

	for number, avg := range averages {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint:gosec // G115: red and blue stay within [0, maxRGB]
		if err != nil {
			return nil, errors.Wrap(err, "unable to get colour")
		}
		result[number] = colour.ToHEX().String()
	}
	return result, nil
}

func vertexName(number int, name fblock.Name) string {
	return fmt.Sprintf("%d. %s", number, name)
}
