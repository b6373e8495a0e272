/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sealer_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idcontact/irma-bridge/pkg/sealer"
)

func generateRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return key
}

func generateECKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return key
}

func rsaPrivatePEM(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func ecPrivatePEM(t *testing.T, key *ecdsa.PrivateKey) []byte {
	t.Helper()

	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
}

func publicPEM(t *testing.T, pub interface{}) []byte {
	t.Helper()

	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func pkcs8PEM(t *testing.T, key interface{}) []byte {
	t.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func TestNewSigner(t *testing.T) {
	t.Run("RSA PKCS1", func(t *testing.T) {
		signer, err := sealer.NewSigner(sealer.KeyTypeRSA, rsaPrivatePEM(t, generateRSAKey(t)))
		require.NoError(t, err)
		require.NotNil(t, signer)
	})

	t.Run("RSA PKCS8", func(t *testing.T) {
		signer, err := sealer.NewSigner(sealer.KeyTypeRSA, pkcs8PEM(t, generateRSAKey(t)))
		require.NoError(t, err)
		require.NotNil(t, signer)
	})

	t.Run("EC SEC1", func(t *testing.T) {
		signer, err := sealer.NewSigner(sealer.KeyTypeEC, ecPrivatePEM(t, generateECKey(t)))
		require.NoError(t, err)
		require.NotNil(t, signer)
	})

	t.Run("EC PKCS8", func(t *testing.T) {
		signer, err := sealer.NewSigner(sealer.KeyTypeEC, pkcs8PEM(t, generateECKey(t)))
		require.NoError(t, err)
		require.NotNil(t, signer)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := sealer.NewSigner(sealer.KeyTypeEC, pkcs8PEM(t, generateRSAKey(t)))
		require.ErrorContains(t, err, "not an EC key")
	})

	t.Run("not PEM", func(t *testing.T) {
		_, err := sealer.NewSigner(sealer.KeyTypeRSA, []byte("garbage"))
		require.ErrorContains(t, err, "no PEM block")
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := sealer.NewSigner("dsa", rsaPrivatePEM(t, generateRSAKey(t)))
		require.ErrorContains(t, err, "unsupported signing key type")
	})
}

func TestNewEncrypter(t *testing.T) {
	t.Run("RSA", func(t *testing.T) {
		encrypter, err := sealer.NewEncrypter(sealer.KeyTypeRSA, publicPEM(t, &generateRSAKey(t).PublicKey))
		require.NoError(t, err)
		require.NotNil(t, encrypter)
	})

	t.Run("EC", func(t *testing.T) {
		encrypter, err := sealer.NewEncrypter(sealer.KeyTypeEC, publicPEM(t, &generateECKey(t).PublicKey))
		require.NoError(t, err)
		require.NotNil(t, encrypter)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := sealer.NewEncrypter(sealer.KeyTypeRSA, publicPEM(t, &generateECKey(t).PublicKey))
		require.ErrorContains(t, err, "not an RSA key")
	})

	t.Run("private key material rejected", func(t *testing.T) {
		_, err := sealer.NewEncrypter(sealer.KeyTypeRSA, rsaPrivatePEM(t, generateRSAKey(t)))
		require.ErrorContains(t, err, "parse encryption key")
	})

	t.Run("not PEM", func(t *testing.T) {
		_, err := sealer.NewEncrypter(sealer.KeyTypeEC, []byte("garbage"))
		require.ErrorContains(t, err, "no PEM block")
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := sealer.NewEncrypter("dsa", publicPEM(t, &generateRSAKey(t).PublicKey))
		require.ErrorContains(t, err, "unsupported encryption key type")
	})
}
