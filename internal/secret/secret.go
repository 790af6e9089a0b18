package secret

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
)

// MustNew generates a new cryptographically secure byte array of length len and returns its
// base64 representation + the hex representation of its SHA512 hash
func MustNew(len int) (string, string) {
	bytes := make([]byte, len)
	_, err := rand.Read(bytes)
	if err != nil {
		panic(err)
	}

	raw := base64.StdEncoding.EncodeToString(bytes)
	sum := sha512.Sum512(bytes)
	return raw, hex.EncodeToString(sum[:])
}

// Hash decodes the given base64 string and returns the hex representation of its SHA512 hash
func Hash(raw string) (string, error) {
	bytes, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", err
	}
	sum := sha512.Sum512(bytes)
	return hex.EncodeToString(sum[:]), nil
}
