package hash

// Hash hashes a plaintext and later verifies it against the stored value.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
