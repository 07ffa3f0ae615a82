package engine

// Request is the per-query context handed through the pipeline stages. It is
// created fresh for every query and owned by the pipeline driver until
// formatting or counting completes.
type Request struct {
	// ID identifies the query in logs and diagnostics.
	ID string
	// Text is the raw query text.
	Text string
	// MatchingModel and WeightingModel name the model pair; validity is the
	// engine's responsibility.
	MatchingModel  string
	WeightingModel string

	// State carries engine-private pipeline state between stages.
	State any

	controls map[string]string
	results  *ResultSet
}

// NewRequest creates a query request. It never fails and does not validate
// that an engine is loaded.
func NewRequest(id, text string) *Request {
	return &Request{
		ID:       id,
		Text:     text,
		controls: map[string]string{},
	}
}

// SetControl attaches a named control value, e.g. the model's c parameter.
func (r *Request) SetControl(name, value string) {
	r.controls[name] = value
}

// Control returns a control value and whether it was set.
func (r *Request) Control(name string) (string, bool) {
	v, ok := r.controls[name]
	return v, ok
}

// AddModelPair declares the matching and weighting models for this request.
func (r *Request) AddModelPair(matching, weighting string) {
	r.MatchingModel = matching
	r.WeightingModel = weighting
}

// SetResults attaches the ranked result set produced by matching.
func (r *Request) SetResults(rs *ResultSet) {
	r.results = rs
}

// Results returns the ranked result set, or nil if the pipeline has not
// produced one.
func (r *Request) Results() *ResultSet {
	return r.results
}

// ExactCount reports the exact number of matching documents. It returns
// ErrCountUnavailable when the pipeline never produced a result set.
func (r *Request) ExactCount() (int, error) {
	if r.results == nil {
		return 0, ErrCountUnavailable
	}
	return r.results.ExactSize(), nil
}
