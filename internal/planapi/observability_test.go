package planapi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf)

	obs.OnCallComplete(CallEvent{RequestID: "r1", StatusCode: 200, LatencyMs: 12, Success: true})
	obs.OnCallComplete(CallEvent{RequestID: "r2", StatusCode: 500, Success: false, ErrorCode: "HTTP_500"})

	out := buf.String()
	assert.Contains(t, out, "msg=plan_call")
	assert.Contains(t, out, "request_id=r1")
	assert.Contains(t, out, "latency_ms=12")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "error_code=HTTP_500")
}
