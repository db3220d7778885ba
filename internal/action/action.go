// Package action defines what rfind does with each matched path.
package action

// Action consumes matched paths in traversal order.
// Actions that hold resources also implement io.Closer; the search runner
// closes them once every source has been explored.
type Action interface {
	// Name identifies the action in log messages.
	Name() string
	// Apply handles one match. isDir is true for directory matches.
	Apply(path string, isDir bool) error
}
