// internal/assessment/selection.go
package assessment

import (
	"math/rand"
	"time"
)

// NewRand returns a generator for selection. A zero seed picks a time-based one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // not security sensitive
}

// SelectRandomQuestions draws n distinct questions uniformly. If n exceeds the
// pool, every question is returned in shuffled order. rng is not safe for
// concurrent use; callers sharing one must serialize access.
func SelectRandomQuestions(pool []Question, n int, rng *rand.Rand) []Question {
	if n <= 0 || len(pool) == 0 {
		return []Question{}
	}
	if n > len(pool) {
		n = len(pool)
	}
	perm := rng.Perm(len(pool))
	out := make([]Question, n)
	for i := 0; i < n; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}

// SelectRandomScenario picks one scenario uniformly. ok is false for an empty pool.
func SelectRandomScenario(pool []Scenario, rng *rand.Rand) (Scenario, bool) {
	if len(pool) == 0 {
		return Scenario{}, false
	}
	return pool[rng.Intn(len(pool))], true
}

func questionIDs(qs []Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
