package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCredential(t *testing.T) {
	assert.NoError(t, ValidateCredential("sk-proj-abcdefghijklmnopqrstuvwxyz"))
	assert.ErrorIs(t, ValidateCredential(""), ErrInvalidCredential)
	assert.ErrorIs(t, ValidateCredential("   "), ErrInvalidCredential)
	assert.ErrorIs(t, ValidateCredential("short"), ErrInvalidCredential)
	assert.ErrorIs(t, ValidateCredential("sk-proj with spaces inside the key"), ErrInvalidCredential)
}
