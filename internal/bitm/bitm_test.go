// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package bitm

import (
	"testing"
	"unsafe"
)

func TestNbit(t *testing.T) {
	for _, x := range [...][2]int{
		{int(unsafe.Sizeof(uint(0))) * 8, (&Bitm[uint]{}).nbit()},
		{int(unsafe.Sizeof(uint8(0))) * 8, (&Bitm[uint8]{}).nbit()},
		{int(unsafe.Sizeof(uint16(0))) * 8, (&Bitm[uint16]{}).nbit()},
		{int(unsafe.Sizeof(uint32(0))) * 8, (&Bitm[uint32]{}).nbit()},
		{int(unsafe.Sizeof(uint64(0))) * 8, (&Bitm[uint64]{}).nbit()},
		{int(unsafe.Sizeof(uintptr(0))) * 8, (&Bitm[uintptr]{}).nbit()},
	} {
		if x[0] != x[1] {
			t.Fatalf("Bitm[T].nbit:\nhave %v\nwant %v", x[0], x[1])
		}
	}
}

func TestZero(t *testing.T) {
	var bitm16 Bitm[uint16]
	if bitm16.m != nil {
		t.Fatalf("bitm16.m:\nhave %v\nwant nil", bitm16.m)
	}
	if bitm16.rem != 0 {
		t.Fatalf("bitm16.rem:\nhave %v\nwant 0", bitm16.rem)
	}
	if n := bitm16.Len(); n != 0 {
		t.Fatalf("bitm16.Len:\nhave %v\nwant 0", n)
	}
	if n := bitm16.Cap(); n != 0 {
		t.Fatalf("bitm16.Cap:\nhave %v\nwant 0", n)
	}
}

func TestGrow(t *testing.T) {
	var m Bitm[uint32]
	if idx := m.Grow(2); idx != 0 {
		t.Fatalf("m.Grow:\nhave %v\nwant 0", idx)
	}
	if n := m.Cap(); n != 64 {
		t.Fatalf("m.Cap:\nhave %v\nwant 64", n)
	}
	if n := m.Rem(); n != 64 {
		t.Fatalf("m.Rem:\nhave %v\nwant 64", n)
	}
	if idx := m.Grow(1); idx != 64 {
		t.Fatalf("m.Grow:\nhave %v\nwant 64", idx)
	}
	if n := m.Len(); n != 0 {
		t.Fatalf("m.Len:\nhave %v\nwant 0", n)
	}
}

func TestSetUnset(t *testing.T) {
	var m Bitm[uint8]
	m.Grow(2)
	for _, i := range [...]int{0, 3, 7, 8, 15} {
		m.Set(i)
		if !m.IsSet(i) {
			t.Fatalf("m.IsSet(%d):\nhave false\nwant true", i)
		}
	}
	// Setting twice must not change the count.
	m.Set(3)
	if n := m.Len(); n != 5 {
		t.Fatalf("m.Len:\nhave %v\nwant 5", n)
	}
	m.Unset(7)
	m.Unset(7)
	if m.IsSet(7) {
		t.Fatal("m.IsSet(7):\nhave true\nwant false")
	}
	if n := m.Rem(); n != 12 {
		t.Fatalf("m.Rem:\nhave %v\nwant 12", n)
	}
	if m.IsSet(-1) || m.IsSet(16) {
		t.Fatal("m.IsSet: out of bounds index should not be set")
	}
	m.Clear()
	if n := m.Len(); n != 0 {
		t.Fatalf("m.Clear: m.Len\nhave %v\nwant 0", n)
	}
}

func TestSearch(t *testing.T) {
	var m Bitm[uint16]
	if _, ok := m.Search(); ok {
		t.Fatal("m.Search: empty map\nhave true\nwant false")
	}
	m.Grow(2)
	for i := range 20 {
		idx, ok := m.Search()
		if !ok || idx != i {
			t.Fatalf("m.Search:\nhave %v, %v\nwant %v, true", idx, ok, i)
		}
		m.Set(idx)
	}
	m.Unset(5)
	if idx, _ := m.Search(); idx != 5 {
		t.Fatalf("m.Search:\nhave %v\nwant 5", idx)
	}
	for i := range m.Cap() {
		m.Set(i)
	}
	if _, ok := m.Search(); ok {
		t.Fatal("m.Search: full map\nhave true\nwant false")
	}
}
