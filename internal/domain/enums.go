package domain

// Intensity selects how loud a celebration is.
type Intensity string

const (
	IntensityStandard Intensity = "standard"
	IntensityElevated Intensity = "elevated"
)

// LinePolicy controls how the timed sequencer exposes revealed lines.
type LinePolicy string

const (
	// LinesStack keeps every revealed line visible.
	LinesStack LinePolicy = "stack"
	// LinesReplace shows only the most recent line.
	LinesReplace LinePolicy = "replace"
)

// ValidLinePolicies is the canonical set of accepted line policy strings.
var ValidLinePolicies = map[string]bool{
	"stack": true, "replace": true,
}

// PuzzleStatus is the lifecycle of a single puzzle session.
type PuzzleStatus string

const (
	PuzzleUnsolved PuzzleStatus = "unsolved"
	PuzzleSolved   PuzzleStatus = "solved"
)
