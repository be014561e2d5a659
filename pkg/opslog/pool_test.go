package opslog

import "testing"

func TestBufferPool_ResetsBetweenUses(t *testing.T) {
	p := newBufferPool()

	b := p.get()
	b.WriteString("leftover")
	p.put(b)

	b2 := p.get()
	if b2.Len() != 0 {
		t.Errorf("buffer from pool has len %d, want 0 after reset", b2.Len())
	}
}
