package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, Verify("Sup3rSecret", hash))
	assert.False(t, Verify("sup3rsecret", hash))
	assert.False(t, Verify("", hash))
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("some-refresh-token")
	h2 := HashToken("some-refresh-token")
	h3 := HashToken("another-token")

	// SHA-256 hex digest, deterministic
	assert.Len(t, h1, 64)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Passw0rd", true},
		{"valid long", "CorrectHorseBattery1", true},
		{"too short", "Pw1shrt", false},
		{"no uppercase", "passw0rdd", false},
		{"no lowercase", "PASSW0RDD", false},
		{"no digit", "Passwordd", false},
		{"empty", "", false},
		{"digits only", "12345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.password))
		})
	}
}
