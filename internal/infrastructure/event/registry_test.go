package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	r := newHandlerRegistry()
	typed := newTestHandler()
	wildcard := newTestHandler()

	r.add(typed, "A", "B")
	r.add(typed, "A")
	r.add(wildcard)

	assert.Len(t, r.handlers("A"), 2, "duplicate registration is ignored")
	assert.Len(t, r.handlers("C"), 1)
	assert.Equal(t, 2, r.count())

	r.remove(typed)
	assert.Len(t, r.handlers("A"), 1)
	assert.Empty(t, r.byType)

	r.remove(wildcard)
	assert.Empty(t, r.handlers("A"))
	assert.Zero(t, r.count())
}
