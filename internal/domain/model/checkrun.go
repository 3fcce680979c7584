package model

// CheckRun represents an individual CI check run attached to a commit,
// as reported by the GitHub Checks API.
type CheckRun struct {
	Name       string // Check run name (e.g., "build", "lint").
	Status     string // queued, in_progress, completed.
	Conclusion string // success, failure, neutral, cancelled, skipped, timed_out, action_required.
}

// Passed reports whether the check run concluded successfully.
func (c CheckRun) Passed() bool {
	return c.Conclusion == ConclusionSuccess
}

// ConclusionSuccess is the only check run conclusion treated as passing.
const ConclusionSuccess = "success"

// FailedCheckNames returns the names of all runs whose conclusion is not
// "success", preserving API order. An empty run list yields no failures, so
// a PR with no configured checks passes vacuously.
func FailedCheckNames(runs []CheckRun) []string {
	var failed []string
	for _, run := range runs {
		if !run.Passed() {
			failed = append(failed, run.Name)
		}
	}
	return failed
}
