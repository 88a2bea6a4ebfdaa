package util

import (
	"crypto/sha1"
	"encoding/hex"
)

func HashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
