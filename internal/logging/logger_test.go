package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithPrefixesClaimAndStage(t *testing.T) {
	var buf bytes.Buffer
	Initialize(true, &buf)
	defer Initialize(false, nil)

	l := With("claim-42", "fanout")
	l.Info("fetched %d candidates", 3)

	out := buf.String()
	assert.True(t, strings.Contains(out, "claim=claim-42"))
	assert.True(t, strings.Contains(out, "stage=fanout"))
	assert.True(t, strings.Contains(out, "fetched 3 candidates"))
}

func TestDebugSuppressedUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	Initialize(false, &buf)
	defer Initialize(false, nil)

	With("c1", "scoring").Debug("should not appear")
	assert.Equal(t, "", buf.String())

	Initialize(true, &buf)
	With("c1", "scoring").Debug("should appear")
	assert.True(t, strings.Contains(buf.String(), "should appear"))
}
