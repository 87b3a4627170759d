// Package hash hashes secrets.
//
// Bcrypt stores account passwords. HMACSHA256 derives stable, non-reversible
// keys from personal data (emails) so cache keys never carry the raw address.
package hash

