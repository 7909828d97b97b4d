package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"wage-settlement/internal/domain"
)

// inputSnapshot is the canonical shape hashed to fingerprint one invocation.
// Row maps marshal with sorted keys, so identical inputs always hash alike.
type inputSnapshot struct {
	Directive  domain.Directive `json:"directive"`
	Attendance []domain.Row     `json:"attendance"`
	Payment    []domain.Row     `json:"payment"`
}

// InputHash is a deterministic fingerprint of the directive plus the full
// raw row sets, reproducible across identical runs.
func InputHash(directive domain.Directive, attendanceRows, paymentRows []domain.Row) (string, error) {
	payload, err := json.Marshal(inputSnapshot{
		Directive:  directive,
		Attendance: attendanceRows,
		Payment:    paymentRows,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal input snapshot: %w", err)
	}
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:]), nil
}

// OutputHash fingerprints a fully assembled report body. The body is frozen
// before hashing and the hash is appended afterwards, so the hash never has
// to include itself.
func OutputHash(body string) string {
	digest := sha256.Sum256([]byte(body))
	return hex.EncodeToString(digest[:])
}

// Hash8 is the short prefix used in audit file names.
func Hash8(hash string) string {
	if len(hash) < 8 {
		return hash
	}
	return hash[:8]
}
