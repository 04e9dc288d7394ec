package utils

import (
	"math/rand"
	"time"
)

const usernameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateUsername generates a short URL-safe handle for freshly activated
// accounts. Uniqueness is enforced by the database constraint.
func GenerateUsername() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = usernameCharset[seededRand.Intn(len(usernameCharset))]
	}
	return string(b)
}
