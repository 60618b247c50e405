package utils

import (
	"math/rand"
)

const idBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandStringBytesMaskImpr generates a short random base62 string, used for
// the public ids of posts and comments.
func RandStringBytesMaskImpr(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idBytes[rand.Intn(len(idBytes))]
	}
	return string(b)
}
