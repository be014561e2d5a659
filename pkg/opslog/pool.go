package opslog

import (
	"bytes"
	"sync"
)

// bufferPool hands out reset *bytes.Buffer values for building the
// human-readable size strings attached to growth log lines, avoiding a
// fresh allocation on every mapped/reserved-size log call.
type bufferPool struct {
	pool sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
}

func (p *bufferPool) get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

func (p *bufferPool) put(b *bytes.Buffer) {
	b.Reset()
	p.pool.Put(b)
}
