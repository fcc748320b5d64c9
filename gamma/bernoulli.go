package gamma

import (
	"math/big"
	"sync"
)

// Cache holds the Bernoulli numbers B_0, B_1, ... computed so far.
// It is filled lazily with the Akiyama-Tanigawa recurrence and can be
// emptied with Reset. A Cache is safe for concurrent use.
type Cache struct {
	mu  sync.Mutex
	row []*big.Rat
	b   []*big.Rat
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return new(Cache)
}

// Len returns the number of Bernoulli numbers currently stored.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.b)
}

// Reset empties the cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.row = nil
	c.b = nil
}

// Bernoulli returns a copy of B_n, with the convention B_1 = +1/2.
func (c *Cache) Bernoulli(n int) *big.Rat {
	c.mu.Lock()
	defer c.mu.Unlock()

	for m := len(c.b); m <= n; m++ {
		// A[m] = 1/(m+1), A[j-1] = j (A[j-1] - A[j])
		c.row = append(c.row, big.NewRat(1, int64(m+1)))
		tmp := new(big.Rat)
		for j := m; j >= 1; j-- {
			tmp.Sub(c.row[j-1], c.row[j])
			c.row[j-1] = new(big.Rat).Mul(tmp, big.NewRat(int64(j), 1))
		}
		c.b = append(c.b, new(big.Rat).Set(c.row[0]))
	}

	return new(big.Rat).Set(c.b[n])
}
