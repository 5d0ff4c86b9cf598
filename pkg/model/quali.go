package model

// QualiEntry holds the best lap times of one entity in a qualifying
// session. Times are seconds, nil means no valid lap in that segment.
type QualiEntry struct {
	Code     string   `json:"code"`
	Position int      `json:"position"`
	Q1       *float64 `json:"q1,omitempty"`
	Q2       *float64 `json:"q2,omitempty"`
	Q3       *float64 `json:"q3,omitempty"`
	Best     *float64 `json:"best,omitempty"`
}

type QualiResult struct {
	Entries []QualiEntry `json:"entries"`
}
