package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})

	SetVerbose(false)
	Debug("hidden %d", 1)
	Info("created %s", "dir")
	Warn("skipping %s", "file")
	Error("failed %d", 2)

	assert.Equal(t, "[INFO] created dir\n[WARN] skipping file\n[ERROR] failed 2\n", buf.String())

	buf.Reset()
	SetVerbose(true)
	assert.True(t, IsVerbose())
	Debug("examining %d", 7)
	assert.Equal(t, "[DEBUG] examining 7\n", buf.String())
}
