package composer

// Result is the completion signal of one composition call. Failures are
// never fatal to the process; Finish only signals that the configured
// total-bytes cap has been reached.
type Result int

const (
	ResultProceed Result = iota
	ResultFinish
)

func (r Result) String() string {
	if r == ResultFinish {
		return "finish"
	}
	return "proceed"
}
