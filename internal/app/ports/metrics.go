package ports

// DecisionMetrics records scheduler and engine KPI counters.
type DecisionMetrics interface {
	RecordSubmitted()
	RecordConflict()
	RecordSuperseded()
	RecordTimeout()
	RecordGeneratorFailure(domain string)
	RecordOwnerOverride()
}
