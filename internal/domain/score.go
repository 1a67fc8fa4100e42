package domain

import (
	m "refine.dev/pkg/refine/internal/model"
)

// scoreReports returns the passed and checked totals and their ratio.
// Info results are excluded from the denominator; a scenario that failed
// to run counts as one failed check.
func scoreReports(reports []m.Report) (passed, checked int, score float64) {
	for _, report := range reports {
		if report.Err != "" {
			checked++
			continue
		}

		p, c := report.Counts()
		passed += p
		checked += c
	}

	if checked == 0 {
		return 0, 0, 1.0
	}

	return passed, checked, float64(passed) / float64(checked)
}
