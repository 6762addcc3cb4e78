package domain

// Recommendation pairs a candidate book with its similarity score and the
// human-readable reasons it was picked. Recommendations are ephemeral:
// they are computed per request and never persisted.
type Recommendation struct {
	Book    *Book    `json:"book"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
