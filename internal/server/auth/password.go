package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plaintext passwords into self-describing encoded
// hashes and checks candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches encoded. A mismatch is not an
	// error; err is set only when encoded cannot be decoded.
	Verify(password, encoded string) (bool, error)
}

// Hasher names accepted by NewPasswordHasher.
const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// NewPasswordHasher returns the hasher registered under name with its
// default cost parameters.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch strings.ToLower(name) {
	case HasherArgon2id, "":
		return DefaultArgon2id, nil
	case HasherBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown password hasher %q", name)
}

// Argon2id hashes with argon2id and encodes the result in the PHC string
// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>.
type Argon2id struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

var DefaultArgon2id = Argon2id{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

func (a Argon2id) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.Time, a.Memory, a.Threads, a.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.Memory, a.Time, a.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify uses the parameters stored in encoded, not the receiver's.
func (Argon2id) Verify(password, encoded string) (bool, error) {
	p, salt, key, err := decodeArgon2id(encoded)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

func decodeArgon2id(encoded string) (Argon2id, []byte, []byte, error) {
	var p Argon2id

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return p, nil, nil, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	p.KeyLen = uint32(len(key))
	p.SaltLen = len(salt)
	return p, salt, key, nil
}

// Bcrypt hashes with bcrypt at the given cost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (Bcrypt) Verify(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
