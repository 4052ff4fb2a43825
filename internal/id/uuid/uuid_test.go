package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firescrape/internal/id/uuid"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	gen := uuid.New()
	first, err := gen.NewID()
	require.NoError(t, err)
	assert.Len(t, first, 36)

	second, err := gen.NewID()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
