package backup

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// formatVersion is the newest version of the sealed format.
const formatVersion = 1

// Key derivation parameters for new backups.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var ErrWrongPassphrase = errors.New("the passphrase is wrong or the backup is corrupted")

// sealed is the JSON document of an encrypted backup.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// IsEncrypted reports whether data is a sealed backup.
func IsEncrypted(data []byte) bool {
	var s sealed
	if err := json.Unmarshal(data, &s); err != nil {
		return false
	}

	return s.V > 0 && len(s.Cipher) > 0
}

// Encrypt seals data with a key derived from the passphrase.
func Encrypt(passphrase string, data []byte) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}

	c, err := aead(passphrase, salt[:], scryptN, scryptR, scryptP)
	if err != nil {
		return nil, err
	}

	// Every backup has a new salt and therefore a new key
	var nonce [chacha20poly1305.NonceSize]byte
	ct := c.Seal(nil, nonce[:], data, salt[:])

	return json.Marshal(sealed{
		V:      formatVersion,
		Salt:   salt[:],
		N:      scryptN,
		R:      scryptR,
		P:      scryptP,
		Cipher: ct,
	})
}

// Decrypt opens a sealed backup.
func Decrypt(passphrase string, data []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	if s.V > formatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrInvalidBackup, s.V)
	}

	// Key derivation costs above the ones used for new backups are not
	// accepted, scrypt allocates 128*N*r bytes
	if s.N > scryptN || s.R > scryptR || s.P > scryptP {
		return nil, fmt.Errorf("%w: key derivation parameters exceed N=%d, r=%d, p=%d", ErrInvalidBackup, scryptN, scryptR, scryptP)
	}

	c, err := aead(passphrase, s.Salt, s.N, s.R, s.P)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := c.Open(nil, nonce[:], s.Cipher, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}

	return pt, nil
}

// aead returns the cipher for the key derived from the passphrase.
func aead(passphrase string, salt []byte, n, r, p int) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, n, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}

	return chacha20poly1305.New(key)
}
