package toolset

import (
	"fmt"
)

// Result is the outcome of one call. Exactly one of Output and Err is meaningful.
type Result struct {
	Operation string
	Output    string
	Err       error
}

// Text renders the result for the agent. Errors travel in the same channel as
// output, prefixed with "Error: ".
func (r Result) Text() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Output
}

func newResult[R fmt.Stringer](operation string, resp R, err error) Result {
	if err != nil {
		return Result{Operation: operation, Err: err}
	}
	return Result{Operation: operation, Output: resp.String()}
}
