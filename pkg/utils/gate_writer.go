// Package utils holds small io helpers shared by commands.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// GateWriter forwards writes to an underlying writer until it is held.
// While held, writes are buffered in memory and written out on Release.
// Safe for concurrent use.
type GateWriter struct {
	mu   sync.Mutex
	out  io.Writer
	held bool
	buf  bytes.Buffer
}

// NewGateWriter returns an open gate in front of out.
func NewGateWriter(out io.Writer) *GateWriter {
	return &GateWriter{out: out}
}

// Write passes p through, or buffers it while the gate is held.
func (g *GateWriter) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held {
		return g.buf.Write(p)
	}
	return g.out.Write(p)
}

// Hold starts buffering writes.
func (g *GateWriter) Hold() {
	g.mu.Lock()
	g.held = true
	g.mu.Unlock()
}

// Release writes everything buffered since Hold and reopens the gate.
func (g *GateWriter) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.held = false
	if g.buf.Len() == 0 {
		return nil
	}

	_, err := g.buf.WriteTo(g.out)
	return err
}
