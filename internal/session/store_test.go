package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	token, ok := s.Token()
	assert.False(t, ok)
	assert.Empty(t, token)
	assert.False(t, s.IsValid())

	s.Set("tok-123")
	token, ok = s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-123", token)
	assert.True(t, s.IsValid())

	s.Set("tok-456")
	token, _ = s.Token()
	assert.Equal(t, "tok-456", token)

	s.Clear()
	assert.False(t, s.IsValid())
	_, ok = s.Token()
	assert.False(t, ok)
}
