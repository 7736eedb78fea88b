// Package gpg provides PGP package-signing capabilities.
package gpg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces detached PGP signatures for package signing using
// ProtonMail's go-crypto, a maintained, modern fork of
// golang.org/x/crypto/openpgp.
// This is in external-adapters to isolate the external dependency.
type Signer struct {
	entity *openpgp.Entity
}

// NewSignerFromFile loads a private key from an armored or binary key file.
// passphrase decrypts the key when it is protected; pass "" for an
// unprotected key.
func NewSignerFromFile(keyPath, passphrase string) (*Signer, error) {
	//nolint:gosec // G304: key path is signing configuration from the command line
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key %s: %w", keyPath, err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse signing key %s: %w", keyPath, err)
		}
	}

	var entity *openpgp.Entity
	for _, e := range keyring {
		if e.PrivateKey != nil {
			entity = e
			break
		}
	}
	if entity == nil {
		return nil, fmt.Errorf("no private key found in %s", keyPath)
	}

	if entity.PrivateKey.Encrypted {
		if passphrase == "" {
			return nil, fmt.Errorf("signing key %s is passphrase-protected", keyPath)
		}
		if err := entity.PrivateKey.Decrypt([]byte(passphrase)); err != nil {
			return nil, fmt.Errorf("failed to decrypt signing key: %w", err)
		}
		for _, sub := range entity.Subkeys {
			if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
				if err := sub.PrivateKey.Decrypt([]byte(passphrase)); err != nil {
					return nil, fmt.Errorf("failed to decrypt signing subkey: %w", err)
				}
			}
		}
	}

	return &Signer{entity: entity}, nil
}

// Sign returns a detached binary signature over data. The function
// signature matches the package writer's signing hook.
func (s *Signer) Sign(data []byte) ([]byte, error) {
	var signature bytes.Buffer
	if err := openpgp.DetachSign(&signature, s.entity, bytes.NewReader(data), nil); err != nil {
		return nil, fmt.Errorf("failed to sign package: %w", err)
	}
	return signature.Bytes(), nil
}
