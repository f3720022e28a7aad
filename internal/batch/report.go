// Package batch implements the per-id outcome report returned by the
// *DeleteBatch mutations. A batch never aborts on a single item: every id
// lands in exactly one bucket and the mutation as a whole reports success.
package batch

// Report buckets each submitted id by outcome. InUse is part of the wire
// shape but is never populated: no subsystem defines "in use" yet.
type Report struct {
	Done        []string `json:"done"`
	Error       []string `json:"error"`
	InProtected []string `json:"inProtected"`
	InUse       []string `json:"inUse"`
	NotFound    []string `json:"notFound"`
}

func NewReport() *Report {
	return &Report{
		Done:        []string{},
		Error:       []string{},
		InProtected: []string{},
		InUse:       []string{},
		NotFound:    []string{},
	}
}
