package random

import (
	"math/rand"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// String returns a random string of n characters
func String(n int) string {
	var sb strings.Builder
	k := len(alphabet)
	for i := 0; i < n; i++ {
		c := alphabet[rand.Intn(k)]
		sb.WriteByte(c)
	}
	return sb.String()
}

// Sentence returns n random words of 4 to 9 characters separated by spaces
func Sentence(n int) string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, String(4+rand.Intn(6)))
	}
	return strings.Join(words, " ")
}

// StringSlice creates a slice of length n containing random strings
func StringSlice(n int) []string {
	ss := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ss = append(ss, String(10))
	}
	return ss
}
