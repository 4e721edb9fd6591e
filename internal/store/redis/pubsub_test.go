package redis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProjectChannel(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("3f1c2b54-8b0e-4f8e-9a61-0d9a4f7c1e22")
	assert.Equal(t, "project:3f1c2b54-8b0e-4f8e-9a61-0d9a4f7c1e22", ProjectChannel(id))

	// Distinct projects never share a channel.
	assert.NotEqual(t, ProjectChannel(uuid.New()), ProjectChannel(uuid.New()))
}
