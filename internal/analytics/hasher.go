package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// Hasher turns client IPs into stable, salted identifiers so visitors can be
// counted without storing the address.
type Hasher struct {
	salt string
}

// NewHasher uses salt, or a random one when salt is empty. A random salt
// changes on every restart, so unique-visitor counts only hold per process.
func NewHasher(salt string) (*Hasher, error) {
	if salt == "" {
		s, err := RandomToken()
		if err != nil {
			return nil, err
		}
		salt = s
	}
	return &Hasher{salt: salt}, nil
}

// Hash is consistent per IP and truncated for storage.
func (h *Hasher) Hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// RandomToken returns 32 random bytes hex-encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
