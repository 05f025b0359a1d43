package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength is the number of base-36 characters in an invite code
const InviteCodeLength = 6

// GenerateInviteCode returns a random 6-character uppercase base-36 code.
// Codes carry ~31 bits of entropy; uniqueness is enforced by the database
// and creation retries on collision.
func GenerateInviteCode() (string, error) {
	code := make([]byte, InviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate invite code: %w", err)
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// BuildInviteLink returns the shareable join link embedding the trip id
func BuildInviteLink(baseURL string, tripID uuid.UUID) string {
	return fmt.Sprintf("%s/trip/join-by-link?trip_id=%s", baseURL, tripID.String())
}
