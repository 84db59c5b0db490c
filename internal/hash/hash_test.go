package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("secret_pass")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.NotEqual(t, "secret_pass", digest)
	assert.Greater(t, len(digest), 20)

	assert.True(t, CheckPassword(digest, "secret_pass"))
	assert.False(t, CheckPassword(digest, "secret_passx"))
}

func TestHashPassword_NonDeterministic(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret_pass")
	require.NoError(t, err)
	second, err := HashPassword("secret_pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "secret_pass"))
	assert.True(t, CheckPassword(second, "secret_pass"))
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-digest", "secret_pass"))
	assert.False(t, CheckPassword("", "secret_pass"))
}
