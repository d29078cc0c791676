package quiz

import "math/rand"

// Pool is the shared set of questions not yet answered correctly.
// Membership only ever shrinks.
type Pool struct {
	items []*Question
}

// NewPool creates a pool holding every question of the bank.
func NewPool(b *Bank) *Pool {
	items := make([]*Question, len(b.Questions))
	copy(items, b.Questions)
	return &Pool{items: items}
}

// Len returns the number of unasked questions.
func (p *Pool) Len() int {
	return len(p.items)
}

// Empty reports whether no questions remain.
func (p *Pool) Empty() bool {
	return len(p.items) == 0
}

// Pick returns a uniformly random question, or nil when the pool is empty.
// The question stays in the pool.
func (p *Pool) Pick(rng *rand.Rand) *Question {
	if len(p.items) == 0 {
		return nil
	}
	return p.items[rng.Intn(len(p.items))]
}

// Contains reports whether q is still in the pool.
func (p *Pool) Contains(q *Question) bool {
	return p.indexOf(q) >= 0
}

// Remove drops q from the pool. Returns false if it was not present.
func (p *Pool) Remove(q *Question) bool {
	i := p.indexOf(q)
	if i < 0 {
		return false
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	return true
}

func (p *Pool) indexOf(q *Question) int {
	for i, item := range p.items {
		if item == q {
			return i
		}
	}
	return -1
}
