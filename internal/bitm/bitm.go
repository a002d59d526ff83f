// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitm defines a bitmap type useful for resource management
// (e.g., slot allocation and free list implementations).
package bitm

import (
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bitmap.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Bitm is a growable bitmap with custom granularity.
type Bitm[T Uint] struct {
	m   []T
	rem int
}

// nbit returns the number of bits in T.
func (m *Bitm[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Len returns the number of bits set in the map.
func (m *Bitm[_]) Len() int { return len(m.m)*m.nbit() - m.rem }

// Cap returns the number of bits in the map.
func (m *Bitm[_]) Cap() int { return len(m.m) * m.nbit() }

// Rem returns the number of bits not set in the map.
func (m *Bitm[_]) Rem() int { return m.rem }

// Grow grows the map by n words.
// It returns the index of the first new bit.
// The new bits are unset.
func (m *Bitm[T]) Grow(n int) int {
	idx := m.Cap()
	if n > 0 {
		m.m = append(m.m, make([]T, n)...)
		m.rem += n * m.nbit()
	}
	return idx
}

// IsSet checks whether index is set.
// It returns false if index is out of bounds.
func (m *Bitm[T]) IsSet(index int) bool {
	if index < 0 || index >= m.Cap() {
		return false
	}
	n := m.nbit()
	return m.m[index/n]&(T(1)<<(index%n)) != 0
}

// Set sets index.
// index must be less than m.Cap().
func (m *Bitm[T]) Set(index int) {
	n := m.nbit()
	w, b := index/n, T(1)<<(index%n)
	if m.m[w]&b == 0 {
		m.m[w] |= b
		m.rem--
	}
}

// Unset unsets index.
// index must be less than m.Cap().
func (m *Bitm[T]) Unset(index int) {
	n := m.nbit()
	w, b := index/n, T(1)<<(index%n)
	if m.m[w]&b != 0 {
		m.m[w] &^= b
		m.rem++
	}
}

// Search returns the index of the first unset bit.
// It does not set the bit.
func (m *Bitm[T]) Search() (index int, ok bool) {
	if m.rem == 0 {
		return
	}
	n := m.nbit()
	for i, w := range m.m {
		if ^w == 0 {
			continue
		}
		return i*n + bits.TrailingZeros64(uint64(^w)), true
	}
	// Should never happen.
	return
}

// Clear unsets every bit.
func (m *Bitm[T]) Clear() {
	clear(m.m)
	m.rem = m.Cap()
}
