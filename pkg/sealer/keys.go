/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sealer

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/go-jose/go-jose/v3"
)

// KeyType tags key material by algorithm family. RSA keys sign with RS256 and
// encrypt with RSA-OAEP; EC keys sign with ES256 and encrypt with ECDH-ES.
type KeyType string

const (
	KeyTypeRSA KeyType = "rsa"
	KeyTypeEC  KeyType = "ec"
)

const contentEncryption = jose.A128CBC_HS256

// NewSigner creates a JWS signing capability from a PEM-encoded private key.
func NewSigner(keyType KeyType, pemData []byte) (jose.Signer, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in signing key")
	}

	var signingKey jose.SigningKey

	switch keyType {
	case KeyTypeRSA:
		key, err := parseRSAPrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}

		signingKey = jose.SigningKey{Algorithm: jose.RS256, Key: key}
	case KeyTypeEC:
		key, err := parseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}

		signingKey = jose.SigningKey{Algorithm: jose.ES256, Key: key}
	default:
		return nil, fmt.Errorf("unsupported signing key type %q", keyType)
	}

	signer, err := jose.NewSigner(signingKey, (&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	return signer, nil
}

// NewEncrypter creates a JWE encryption capability from a PEM-encoded public
// key. The content type is fixed to JWT since the payload is always a nested
// signed token.
func NewEncrypter(keyType KeyType, pemData []byte) (jose.Encrypter, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in encryption key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse encryption key: %w", err)
	}

	var recipient jose.Recipient

	switch keyType {
	case KeyTypeRSA:
		key, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("encryption key is not an RSA key")
		}

		recipient = jose.Recipient{Algorithm: jose.RSA_OAEP, Key: key}
	case KeyTypeEC:
		key, ok := pub.(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("encryption key is not an EC key")
		}

		recipient = jose.Recipient{Algorithm: jose.ECDH_ES, Key: key}
	default:
		return nil, fmt.Errorf("unsupported encryption key type %q", keyType)
	}

	encrypter, err := jose.NewEncrypter(contentEncryption, recipient,
		(&jose.EncrypterOptions{}).WithType("JWT").WithContentType("JWT"))
	if err != nil {
		return nil, fmt.Errorf("create encrypter: %w", err)
	}

	return encrypter, nil
}

func parseRSAPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse RSA signing key: %w", err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("signing key is not an RSA key")
	}

	return key, nil
}

func parseECPrivateKey(der []byte) (*ecdsa.PrivateKey, error) {
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse EC signing key: %w", err)
	}

	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("signing key is not an EC key")
	}

	return key, nil
}
