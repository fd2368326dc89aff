package clusterplay

// Mode selects which engine is active. Only one runs at a time.
type Mode string

const (
	ModeKMeans Mode = "kmeans"
	ModeDBSCAN Mode = "dbscan"
)

func (m Mode) Valid() bool {
	return m == ModeKMeans || m == ModeDBSCAN
}

// Phase is one of the two alternating k-means sub-steps.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseAssign
	PhaseUpdate
)

func (p Phase) String() string {
	switch p {
	case PhaseAssign:
		return "Assign"
	case PhaseUpdate:
		return "Update"
	default:
		return "None"
	}
}

// phaseFor returns the phase executed when the step counter reaches n.
func phaseFor(n int) Phase {
	if n%2 == 1 {
		return PhaseAssign
	}

	return PhaseUpdate
}

// Palette holds the display colors centroids and clusters cycle through.
var Palette = []string{"#ef4444", "#10b981", "#3b82f6", "#f59e0b", "#8b5cf6", "#ec4899"}

// ColorOf returns the palette entry for color index i.
func ColorOf(i int) string {
	if i < 0 {
		i = -i
	}

	return Palette[i%len(Palette)]
}
