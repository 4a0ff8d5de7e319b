// Package hash provides password hashing behind a small interface.
//
// Only the hash is ever stored; the plaintext password never reaches the
// persistence layer.
package hash

// Hash hashes secrets and verifies plaintext against a stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
