// Package cryptox hashes account passwords with argon2id.
//
// Hashes use the PHC string format so the parameters travel with the hash:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// Salt and key are unpadded standard base64.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindcandy/internal/common"
	"golang.org/x/crypto/argon2"
)

var ErrMalformedHash = errors.New("malformed password hash")

// maxMemory caps the cost a stored hash may ask for.
const maxMemory = 4 * 64 * 1024

// Params are the argon2id cost settings. Memory is in KiB.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultParams follow the RFC 9106 second recommendation scaled for a
// mobile device.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}

// DeriveKey runs argon2id over password and salt.
func DeriveKey(password, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// Hasher hashes and verifies passwords with fixed parameters. The zero
// value uses DefaultParams.
type Hasher struct {
	Params Params
}

func NewHasher(p Params) *Hasher {
	return &Hasher{Params: p}
}

func (h *Hasher) params() Params {
	if h == nil || h.Params == (Params{}) {
		return DefaultParams
	}
	return h.Params
}

// Hash returns the encoded argon2id hash of password with a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	p := h.params()
	if p.SaltLen <= 0 || p.KeyLen == 0 || p.Threads == 0 {
		return "", fmt.Errorf("invalid argon2 params %+v", p)
	}

	salt := common.GenerateRandByteArray(p.SaltLen)
	key := DeriveKey([]byte(password), salt, p)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. The comparison is
// constant time. A malformed hash never matches.
func (h *Hasher) Verify(encoded, password string) bool {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false
	}
	candidate := DeriveKey([]byte(password), salt, p)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, ErrMalformedHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, ErrMalformedHash
	}
	// argon2.IDKey panics on t=0 or p=0 and allocates m KiB up front.
	if p.Time == 0 || p.Threads == 0 || p.Memory < 8*uint32(p.Threads) || p.Memory > maxMemory {
		return Params{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, ErrMalformedHash
	}

	p.SaltLen = len(salt)
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
