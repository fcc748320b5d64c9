package hypgeom

import (
	"bufio"
	"encoding"
	"fmt"
	"io"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/tuneinsight/hypgeom/utils/buffer"
)

// Memo is a bounded cache of evaluation results keyed by the blake3 digest
// of the serialized inputs. The oldest entry is evicted first. Memo is safe
// for concurrent use.
type Memo struct {
	mu       sync.Mutex
	capacity int
	entries  map[[32]byte][]byte
	order    [][32]byte
	hits     int
}

// NewMemo returns an empty Memo holding at most capacity results.
func NewMemo(capacity int) *Memo {
	if capacity < 0 {
		panic(fmt.Errorf("invalid capacity: must be non-negative but is %d", capacity))
	}
	return &Memo{capacity: capacity, entries: make(map[[32]byte][]byte, capacity)}
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Hits returns the number of lookups that found a cached result.
func (m *Memo) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Reset empties the cache.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[[32]byte][]byte, m.capacity)
	m.order = m.order[:0]
	m.hits = 0
}

// memoKey identifies an evaluation: the operation, its integer arguments and
// the values of its inputs.
type memoKey struct {
	op          uint8
	regularized bool
	prec        uint
	n, length   int
	// number of upper parameters
	p int
}

const (
	opDirect = uint8(iota)
	opSeriesDirect
)

func (m *Memo) digest(k memoKey, values ...io.WriterTo) (key [32]byte, err error) {

	h := blake3.New()
	w := bufio.NewWriter(h)

	var reg uint8
	if k.regularized {
		reg = 1
	}

	if _, err = buffer.WriteUint8(w, k.op); err != nil {
		return key, fmt.Errorf("buffer.WriteUint8: %w", err)
	}

	if _, err = buffer.WriteUint8(w, reg); err != nil {
		return key, fmt.Errorf("buffer.WriteUint8: %w", err)
	}

	for _, c := range []uint64{uint64(k.prec), uint64(k.n), uint64(k.length), uint64(k.p), uint64(len(values))} {
		if _, err = buffer.WriteUint64(w, c); err != nil {
			return key, fmt.Errorf("buffer.WriteUint64: %w", err)
		}
	}

	for _, v := range values {
		if _, err = v.WriteTo(w); err != nil {
			return key, fmt.Errorf("WriteTo: %w", err)
		}
	}

	if err = w.Flush(); err != nil {
		return key, fmt.Errorf("bufio.Writer.Flush: %w", err)
	}

	copy(key[:], h.Sum(nil))

	return
}

// load decodes the result cached under key on v and reports whether it was found.
func (m *Memo) load(key [32]byte, v encoding.BinaryUnmarshaler) bool {

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.entries[key]
	if !ok {
		return false
	}

	if err := v.UnmarshalBinary(p); err != nil {
		return false
	}

	m.hits++

	return true
}

// store caches v under key.
func (m *Memo) store(key [32]byte, v encoding.BinaryMarshaler) {

	if m.capacity == 0 {
		return
	}

	p, err := v.MarshalBinary()
	if err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		return
	}

	if len(m.order) >= m.capacity {
		delete(m.entries, m.order[0])
		m.order = m.order[1:]
	}

	m.entries[key] = p
	m.order = append(m.order, key)
}
