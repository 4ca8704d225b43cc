package migrate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDirRejectsMissingDir(t *testing.T) {
	require.Error(t, ValidateDir("no-such-dir"))
}
