package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		assert.Len(t, code, InviteCodeLength)
		for _, c := range code {
			assert.Contains(t, inviteCodeAlphabet, string(c))
		}
		seen[code] = true
	}
	// 100 draws from a 36^6 space colliding down to a handful would mean
	// the generator is broken, not unlucky.
	assert.Greater(t, len(seen), 90)
}

func TestBuildInviteLink(t *testing.T) {
	tripID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	link := BuildInviteLink("https://tripmate.example.com", tripID)

	assert.True(t, strings.HasPrefix(link, "https://tripmate.example.com/trip/join-by-link"))
	assert.Contains(t, link, "trip_id="+tripID.String())
}
