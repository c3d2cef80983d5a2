package graph

// Stage names a step of the pipeline as reported to a ProgressFunc.
type Stage string

const (
	StageMetadata Stage = "metadata"
	StageExtended Stage = "extended"
	StageTree     Stage = "tree"
	StageFilter   Stage = "filter"
	StageFetch    Stage = "fetch"
	StageExtract  Stage = "extract"
	StageDone     Stage = "done"
)

// Event reports progress. Done and Total are counts for stages that have
// them (files fetched, files extracted) and zero otherwise.
type Event struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message,omitempty"`
	Done    int    `json:"done,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// ProgressFunc receives events from the goroutine that runs Assemble, except
// for fetch events, which arrive from fetch workers one at a time.
type ProgressFunc func(Event)

func (f ProgressFunc) emit(e Event) {
	if f != nil {
		f(e)
	}
}
