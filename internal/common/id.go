package common

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewNumericID returns a client-generated numeric identifier: the current
// epoch time in milliseconds. Creations are user-paced, so collisions are a
// theoretical concern only; the scheme is kept because several entity types
// rely on the natural chronological ordering of their local ids.
func NewNumericID() int64 {
	return time.Now().UnixMilli()
}

// NewStringID returns an opaque string identifier (a random UUID). Used where
// the identifier must not look like a meaningful sequence number.
func NewStringID() string {
	return uuid.NewString()
}

// NewCompactID returns an epoch-base36 timestamp concatenated with random
// base36 characters. Kept for compatibility with identifiers generated by
// earlier releases; new code should prefer NewStringID.
func NewCompactID() string {
	const tail = 8
	b := make([]byte, 0, 20)
	b = strconv.AppendInt(b, time.Now().UnixMilli(), 36)
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < tail; i++ {
		b = append(b, alphabet[rand.Intn(len(alphabet))])
	}
	return string(b)
}
