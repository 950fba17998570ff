package engine

import "math/rand"

// Source supplies the catalog index of the next piece to spawn.
// Next must return a value in [0, n).
type Source interface {
	Next(n int) int
}

// RandomSource picks every piece uniformly at random.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a uniform source seeded for reproducible games.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly random index.
func (s *RandomSource) Next(n int) int {
	return s.rng.Intn(n)
}

// BagSource deals every index once, in shuffled order, before reshuffling.
type BagSource struct {
	rng  *rand.Rand
	bag  []int
	size int
}

// NewBagSource returns a shuffled-bag source.
func NewBagSource(seed int64) *BagSource {
	return &BagSource{rng: rand.New(rand.NewSource(seed))}
}

// Next pops the next index from the bag, refilling it when empty or when the
// catalog size changed.
func (s *BagSource) Next(n int) int {
	if len(s.bag) == 0 || s.size != n {
		s.refill(n)
	}
	idx := s.bag[0]
	s.bag = s.bag[1:]
	return idx
}

func (s *BagSource) refill(n int) {
	s.bag = s.rng.Perm(n)
	s.size = n
}

// SequenceSource replays a fixed list of indices in a loop.
type SequenceSource struct {
	seq []int
	pos int
}

// NewSequenceSource returns a source that cycles through seq. An empty
// sequence always yields 0.
func NewSequenceSource(seq ...int) *SequenceSource {
	return &SequenceSource{seq: seq}
}

// Next returns the next index of the sequence, wrapped into [0, n).
func (s *SequenceSource) Next(n int) int {
	if len(s.seq) == 0 {
		return 0
	}
	v := s.seq[s.pos%len(s.seq)]
	s.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
