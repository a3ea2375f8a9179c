package lr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Table_DebugString_DoesNotPanic(t *testing.T) {
	table := buildAcceptsSingleIdentTable()
	out := table.DebugString()
	assert.Contains(t, out, "STATE 0")
	assert.Contains(t, out, "STATE 1")
}
