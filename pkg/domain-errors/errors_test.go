package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCarriesCode(t *testing.T) {
	err := New(CodeAlreadyRevoked, "certificate already revoked")
	assert.True(t, HasCode(err, CodeAlreadyRevoked))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.Equal(t, CodeAlreadyRevoked, CodeOf(err))
	assert.Contains(t, err.Error(), "already_revoked")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to load certificate")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, HasCode(err, CodeInternal))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestHasCodeWalksChain(t *testing.T) {
	inner := New(CodeNotFound, "certificate not found")
	outer := Wrap(inner, CodeInternal, "get certificate")
	wrapped := fmt.Errorf("handler: %w", outer)

	assert.True(t, HasCode(wrapped, CodeInternal))
	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(wrapped, CodeUnauthorized))
	// The outermost code wins for transport mapping.
	assert.Equal(t, CodeInternal, CodeOf(wrapped))
}

func TestCodeOfUncodedError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
