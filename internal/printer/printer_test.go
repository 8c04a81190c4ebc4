package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("added task %d", 3)
	p.Infof("nothing due")
	p.Warnf("careful")
	p.Errorf("broken")
	p.Printf("plain %s", "text")
	p.Success("Task saved", "tasks.json")

	out := buf.String()
	assert.Contains(t, out, "added task 3")
	assert.Contains(t, out, "nothing due")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "plain text\n")
	assert.Contains(t, out, "tasks.json")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
