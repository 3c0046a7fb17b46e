package sim

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// HashFunc produces the short opaque token stamped on new commits.
type HashFunc func() string

// DefaultHashLength is the length of tokens produced by RandomHash.
const DefaultHashLength = 7

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomHash returns a random base-36 token of DefaultHashLength characters.
func RandomHash() string {
	return randomToken(DefaultHashLength)
}

// RandomHashOfLength returns a HashFunc producing random base-36 tokens of n characters.
func RandomHashOfLength(n int) HashFunc {
	if n <= 0 {
		n = DefaultHashLength
	}
	return func() string { return randomToken(n) }
}

func randomToken(n int) string {
	limit := big.NewInt(int64(len(base36)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			buf[i] = base36[i%len(base36)]
			continue
		}
		buf[i] = base36[idx.Int64()]
	}
	return string(buf)
}

// SequenceHash returns a deterministic HashFunc yielding prefix1, prefix2, ...
func SequenceHash(prefix string) HashFunc {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

// FixedHashes returns a HashFunc yielding the given tokens in order, then
// falling back to "h<n>" once they run out.
func FixedHashes(hashes ...string) HashFunc {
	i := 0
	return func() string {
		defer func() { i++ }()
		if i < len(hashes) {
			return hashes[i]
		}
		return fmt.Sprintf("h%d", i+1)
	}
}

// maxHashDraws bounds how often uniqueHash asks the generator for a fresh token.
const maxHashDraws = 32

// uniqueHash draws from hash until the token is not already used by a commit
// in r. A generator stuck on taken tokens gets a numeric suffix instead.
func uniqueHash(r Repository, hash HashFunc) string {
	h := hash()
	for range maxHashDraws {
		if _, taken := r.CommitByHash(h); !taken {
			return h
		}
		h = hash()
	}
	base := h
	for n := 2; ; n++ {
		h = fmt.Sprintf("%s-%d", base, n)
		if _, taken := r.CommitByHash(h); !taken {
			return h
		}
	}
}
