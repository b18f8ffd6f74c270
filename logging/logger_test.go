// logging/logger_test.go
package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/harborworks/causeway-api/logging"
)

func TestInitLoggerCreatesMissingLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logging")

	require.NotPanics(t, func() { logger.InitLogger(dir) })
	logger.Info("logger initialized")

	_, err := os.Stat(filepath.Join(dir, "api.log"))
	assert.NoError(t, err)
}
