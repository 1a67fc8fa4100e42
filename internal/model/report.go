package model

// StepStatus is the outcome of one checked step.
type StepStatus string

const (
	// Passed means the step met its expectation.
	Passed StepStatus = "passed"
	// Failed means the step produced something other than expected.
	Failed StepStatus = "failed"
	// Errored means the step failed without an expectation covering it.
	Errored StepStatus = "error"
	// Info means the step ran without an expectation.
	Info StepStatus = "info"
)

func (s StepStatus) String() string {
	return string(s)
}

// Checked reports whether the status counts towards the score.
func (s StepStatus) Checked() bool {
	return s == Passed || s == Failed || s == Errored
}

// StepResult is the outcome of one script step or override definition.
type StepResult struct {
	Path       string     `yaml:"path"`
	Label      string     `yaml:"label,omitempty"`
	Call       string     `yaml:"call"`
	Resolution string     `yaml:"resolution,omitempty"`
	Value      string     `yaml:"value,omitempty"`
	Expected   string     `yaml:"expected,omitempty"`
	Error      string     `yaml:"error,omitempty"`
	Status     StepStatus `yaml:"status"`
	Diff       string     `yaml:"diff,omitempty"`
}

// Report collects the results of one scenario run.
type Report struct {
	Scenario string       `yaml:"scenario"`
	File     Path         `yaml:"file"`
	Hash     string       `yaml:"hash"`
	Results  []StepResult `yaml:"results,omitempty"`
	Err      string       `yaml:"error,omitempty"`
}

// Counts returns the number of passed and checked results.
func (r Report) Counts() (passed, checked int) {
	for _, res := range r.Results {
		if !res.Status.Checked() {
			continue
		}

		checked++

		if res.Status == Passed {
			passed++
		}
	}

	return passed, checked
}

// Passed reports whether the scenario ran and every check passed.
func (r Report) Passed() bool {
	if r.Err != "" {
		return false
	}

	passed, checked := r.Counts()

	return passed == checked
}
