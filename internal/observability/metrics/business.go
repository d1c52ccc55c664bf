package metrics

import "time"

// RecordTranslationDerived records one whole-item derivation attempt.
func RecordTranslationDerived(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	TranslationsDerivedTotal.WithLabelValues(result).Inc()
}

// RecordTranslationDuration records how long one derivation took.
func RecordTranslationDuration(d time.Duration) {
	TranslationDuration.Observe(d.Seconds())
}

// UpdateNewsTotal refreshes the stored-items gauge.
func UpdateNewsTotal(count int64) {
	NewsTotal.Set(float64(count))
}

// UpdateNewsIncomplete refreshes the incomplete-items gauge.
func UpdateNewsIncomplete(count int64) {
	NewsIncomplete.Set(float64(count))
}

// RecordReconcileRun records one reconciliation sweep.
func RecordReconcileRun(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ReconcileRunsTotal.WithLabelValues(result).Inc()
}
