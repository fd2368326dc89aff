package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/mpraski/clusterplay"
)

type centroidDoc struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color"`
}

type pointDoc struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Label *int    `yaml:"label,omitempty"`
	Core  bool    `yaml:"core,omitempty"`
}

type stateDoc struct {
	Mode      string        `yaml:"mode"`
	Step      int           `yaml:"step,omitempty"`
	NextPhase string        `yaml:"next_phase,omitempty"`
	Cost      float64       `yaml:"cost,omitempty"`
	Eps       float64       `yaml:"eps,omitempty"`
	MinPts    int           `yaml:"min_pts,omitempty"`
	Clusters  int           `yaml:"clusters,omitempty"`
	Noise     int           `yaml:"noise,omitempty"`
	Centroids []centroidDoc `yaml:"centroids,omitempty"`
	Previous  []centroidDoc `yaml:"previous,omitempty"`
	Points    []pointDoc    `yaml:"points"`
}

func centroidDocs(c []clusterplay.Centroid) []centroidDoc {
	if len(c) == 0 {
		return nil
	}

	out := make([]centroidDoc, len(c))
	for i, v := range c {
		out[i] = centroidDoc{X: v.X, Y: v.Y, Color: clusterplay.ColorOf(v.Color)}
	}

	return out
}

func newStateDoc(s clusterplay.State) stateDoc {
	d := stateDoc{
		Mode:   string(s.Mode),
		Points: make([]pointDoc, len(s.Points)),
	}

	switch s.Mode {
	case clusterplay.ModeKMeans:
		d.Step = s.Step
		d.NextPhase = s.NextPhase.String()
		d.Cost = s.Cost
		d.Centroids = centroidDocs(s.Centroids)
		d.Previous = centroidDocs(s.Previous)
	case clusterplay.ModeDBSCAN:
		d.Eps = s.Eps
		d.MinPts = s.MinPts
		d.Clusters = s.Clusters
		d.Noise = s.Noise
	}

	for i, p := range s.Points {
		d.Points[i] = pointDoc{X: p.X, Y: p.Y}

		if v, ok := p.Label.Int(); ok {
			d.Points[i].Label = &v
		}

		if s.Mode == clusterplay.ModeDBSCAN {
			d.Points[i].Core = p.Core
		}
	}

	return d
}

func writeState(w io.Writer, s clusterplay.State) error {
	data, err := yaml.Marshal(newStateDoc(s))
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	_, err = w.Write(data)

	return err
}
