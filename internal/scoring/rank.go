package scoring

import "clubswim/internal/meet/models"

// Split partitions items by pred, preserving input order. Both results are
// non-nil.
func Split[T any](items []T, pred func(T) bool) (matched, rest []T) {
	matched = make([]T, 0, len(items))
	rest = make([]T, 0)
	for _, item := range items {
		if pred(item) {
			matched = append(matched, item)
		} else {
			rest = append(rest, item)
		}
	}
	return matched, rest
}

// Rank gives every item 1 + the number of items strictly better than it, so
// ties share a rank and the next distinct value skips the tie size (1,1,3).
// ranks[i] belongs to items[i].
func Rank[T any](items []T, better func(a, b T) bool) []uint32 {
	ranks := make([]uint32, len(items))
	for i, item := range items {
		ahead := 0
		for _, other := range items {
			if better(other, item) {
				ahead++
			}
		}
		ranks[i] = uint32(ahead) + 1
	}
	return ranks
}

// Resulted is a registration view that may carry a result.
type Resulted interface {
	RegistrationResult() *models.RegistrationResult
}

// Partitioned holds registrations split by result state.
type Partitioned[T Resulted] struct {
	Qualified      []T
	Disqualified   []T
	MissingResults []T
}

// PartitionByResult splits registrations into missing results, then the rest
// into disqualified and qualified.
func PartitionByResult[T Resulted](items []T) Partitioned[T] {
	withResult, missing := Split(items, func(r T) bool { return r.RegistrationResult() != nil })
	disqualified, qualified := Split(withResult, func(r T) bool { return r.RegistrationResult().Disqualified })
	return Partitioned[T]{
		Qualified:      qualified,
		Disqualified:   disqualified,
		MissingResults: missing,
	}
}

// Faster orders results by time; lower is better.
func Faster(a, b models.RegistrationResult) bool {
	return a.TimeMillis < b.TimeMillis
}

// MorePoints orders FINA totals; higher is better.
func MorePoints(a, b uint32) bool {
	return a > b
}
