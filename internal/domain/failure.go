package domain

// TestFailure represents a failed test case.
type TestFailure struct {
	Title    string   `json:"title"`
	Symbol   string   `json:"symbol"`
	Origin   string   `json:"origin"`
	Message  string   `json:"message"`
	Trace    []string `json:"trace"`
	Resolved bool     `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
