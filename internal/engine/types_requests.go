package engine

// LoadRequest represents a request to open a dataset and start its session.
type LoadRequest struct {
	// Path is the dataset file
	Path string
}

// MergeRequest represents a request to merge traced buildings of a dataset.
type MergeRequest struct {
	// Path is the dataset file
	Path string

	// DryRun performs planning only without making changes
	DryRun bool

	// Strict refuses to apply a plan that has conflicts
	Strict bool
}

// UndoRequest represents a request to revert the last merge.
type UndoRequest struct {
	// Path is the dataset file
	Path string
}

// RedoRequest represents a request to re-apply the last undone merge.
type RedoRequest struct {
	// Path is the dataset file
	Path string
}

// StatusRequest represents a request for dataset and session status.
type StatusRequest struct {
	// Path is the dataset file
	Path string
}

// FilterRequest represents a request to hide or show existing buildings.
type FilterRequest struct {
	// Path is the dataset file
	Path string

	// Enabled switches the clean-slate filter on (hide) or off (show)
	Enabled bool
}
