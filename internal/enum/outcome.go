package enum

// OutcomeStatus classifies a campaign fetch. The server reuses one flat JSON
// shape for all three conditions, so the status is decided client-side.
type OutcomeStatus string

const (
	OutcomeSuccess      OutcomeStatus = "success"
	OutcomeRateLimited  OutcomeStatus = "rate_limited"
	OutcomeUnclassified OutcomeStatus = "unclassified"
)

func (t OutcomeStatus) String() string {
	return string(t)
}
