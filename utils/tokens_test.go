package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShortToken(t *testing.T) {
	token := GenerateShortToken(24)

	// n random bytes render as 2n lowercase hex characters
	assert.Len(t, token, 48)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), token)

	// Two tokens never collide in practice
	assert.NotEqual(t, token, GenerateShortToken(24))
}
