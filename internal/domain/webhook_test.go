package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookMatches(t *testing.T) {
	t.Parallel()

	specific := &Webhook{Events: []string{"TASK_MOVED", "TASK_DELETED"}}
	assert.True(t, specific.Matches(EventTaskMoved))
	assert.True(t, specific.Matches(EventTaskDeleted))
	assert.False(t, specific.Matches(EventCommentCreated))

	wildcard := &Webhook{Events: []string{WebhookWildcard}}
	assert.True(t, wildcard.Matches(EventTaskCreated))
	assert.True(t, wildcard.Matches(EventCommentCreated))

	empty := &Webhook{Events: nil}
	assert.False(t, empty.Matches(EventTaskCreated))
}
