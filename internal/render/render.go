// Package render formats playground state for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mpraski/clusterplay"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Help  lipgloss.Style
	Noise lipgloss.Style
}

// DefaultStyles is the standard theme.
var DefaultStyles = Styles{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f8fafc")).Background(lipgloss.Color("#111827")).Padding(0, 1),
	Label: lipgloss.NewStyle().Bold(true),
	Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681")),
	Noise: lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")),
}

// phaseText describes what the next k-means step will do.
func phaseText(p clusterplay.Phase) string {
	if p == clusterplay.PhaseAssign {
		return "Assign to nearest"
	}

	return "Move centers"
}

// Status renders the one-line title bar for s.
func (st Styles) Status(s clusterplay.State) string {
	var text string

	switch s.Mode {
	case clusterplay.ModeDBSCAN:
		text = fmt.Sprintf("DBSCAN: eps %.0f • minPts %d • %d clusters • %d noise", s.Eps, s.MinPts, s.Clusters, s.Noise)
	default:
		text = fmt.Sprintf("K-Means: Step %d • %s", s.Step, phaseText(s.NextPhase))
	}

	line := st.Title.Render(text)
	if s.Mode == clusterplay.ModeKMeans && s.Auto {
		line += " " + st.Help.Render("[auto]")
	}

	return line
}

// Legend renders one line per cluster with its member count.
func (st Styles) Legend(s clusterplay.State) string {
	var (
		counts = map[int]int{}
		noise  int
		n      int
	)

	for _, p := range s.Points {
		if p.Label.IsNoise() {
			noise++
			continue
		}

		if id, ok := p.Label.ID(); ok {
			counts[id]++
			n = max(n, id+1)
		}
	}

	if s.Mode == clusterplay.ModeKMeans {
		n = max(n, len(s.Centroids))
	}

	var b strings.Builder

	for id := 0; id < n; id++ {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(clusterplay.ColorOf(id))).Render("●")
		fmt.Fprintf(&b, "%s %s %d\n", swatch, st.Label.Render(fmt.Sprintf("cluster %d", id)), counts[id])

		if s.Mode == clusterplay.ModeKMeans && id < len(s.Centroids) {
			c := s.Centroids[id]
			fmt.Fprintf(&b, "  %s\n", st.Help.Render(fmt.Sprintf("center (%.1f, %.1f)", c.X, c.Y)))

			if id < len(s.Previous) {
				pc := s.Previous[id]
				fmt.Fprintf(&b, "  %s\n", st.Help.Render(fmt.Sprintf("was    (%.1f, %.1f)", pc.X, pc.Y)))
			}
		}
	}

	if noise > 0 {
		fmt.Fprintf(&b, "%s %s %d\n", st.Noise.Render("●"), st.Label.Render("noise"), noise)
	}

	return b.String()
}
