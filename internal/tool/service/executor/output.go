package executor

import (
	"bytes"
	"strings"
)

// collector captures command output up to a size limit.
// Bytes past the limit are discarded but still reported as written so the
// child never blocks on a full pipe.
type collector struct {
	buffer    bytes.Buffer
	maxBytes  int
	truncated bool
}

func newCollector(maxBytes int) *collector {
	return &collector{maxBytes: maxBytes}
}

func (c *collector) Write(p []byte) (n int, err error) {
	remainingSpace := c.maxBytes - c.buffer.Len()
	if remainingSpace <= 0 {
		if len(p) > 0 {
			c.truncated = true
		}
		return len(p), nil
	}

	toWrite := p
	if len(toWrite) > remainingSpace {
		toWrite = toWrite[:remainingSpace]
		c.truncated = true
	}

	written, err := c.buffer.Write(toWrite)
	if err != nil {
		return written, err
	}

	return len(p), nil
}

// String returns the captured text. Invalid UTF-8 (including a sequence
// split by truncation) is replaced with U+FFFD.
func (c *collector) String() string {
	return strings.ToValidUTF8(c.buffer.String(), "�")
}

func (c *collector) Truncated() bool {
	return c.truncated
}
