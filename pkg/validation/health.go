// ABOUTME: Advisory health scoring on top of validation results
// ABOUTME: Derived only, never gates success or failure

package validation

import "github.com/mkearney/huntstore/pkg/schema"

// HealthReport is a validation result with a derived quality score.
type HealthReport struct {
	Result

	// HealthScore is max(0, 100 - 20*errors - 5*warnings).
	HealthScore     int
	Recommendations []string
}

// ValidateWithHealthReport runs Validate and derives the score and
// recommendations from the result. No additional I/O.
func (s *Service) ValidateWithHealthReport(kind schema.Kind, raw map[string]any, opts Options) HealthReport {
	res := s.Validate(kind, raw, opts)

	score := 100 - 20*len(res.Errors) - 5*len(res.Warnings)
	if score < 0 {
		score = 0
	}
	s.metrics.RecordHealthScore(string(kind), score)

	var recs []string
	if !res.Success {
		recs = append(recs, "resolve validation errors before writing the document back")
	}
	if res.MigrationApplied {
		recs = append(recs, "migration applied - update the stored document to the latest version")
	}
	if score < 80 {
		recs = append(recs, "health score below 80 - review warnings")
	}

	return HealthReport{
		Result:          res,
		HealthScore:     score,
		Recommendations: recs,
	}
}
