package auth

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// key buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// key buckets

	"shortlink/config"
	"shortlink/internal/domain/lifecycle"
)

// KeyMaterial holds the PEM encoded Ed25519 key pair used for session tokens.
type KeyMaterial struct {
	PrivateKeyPEM []byte
	PublicKeyPEM  []byte
}

// NewKeyMaterial loads the token key pair at start-up.
func NewKeyMaterial(cfg *config.Config) (*KeyMaterial, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	return LoadKeyMaterial(ctx, cfg.Token)
}

// LoadKeyMaterial prefers the inline PEM values and falls back to reading both keys from the
// configured bucket.
func LoadKeyMaterial(ctx context.Context, cfg *config.TokenConfig) (*KeyMaterial, error) {
	if cfg == nil {
		return nil, errors.New("token config is missing")
	}

	if cfg.PrivateKeyPEM != "" && cfg.PublicKeyPEM != "" {
		return &KeyMaterial{
			PrivateKeyPEM: []byte(cfg.PrivateKeyPEM),
			PublicKeyPEM:  []byte(cfg.PublicKeyPEM),
		}, nil
	}

	if cfg.KeyBucketURL == "" {
		return nil, errors.New("token keys not configured: set token.privateKeyPem/publicKeyPem or token.keyBucketUrl")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.KeyBucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open key bucket %s", cfg.KeyBucketURL)
	}
	defer bucket.Close()

	privateKey, err := bucket.ReadAll(ctx, cfg.PrivateKeyName)
	if err != nil {
		return nil, errors.Wrapf(err, "read private key %s", cfg.PrivateKeyName)
	}
	publicKey, err := bucket.ReadAll(ctx, cfg.PublicKeyName)
	if err != nil {
		return nil, errors.Wrapf(err, "read public key %s", cfg.PublicKeyName)
	}

	return &KeyMaterial{PrivateKeyPEM: privateKey, PublicKeyPEM: publicKey}, nil
}

// GenerateKeyMaterial creates a fresh Ed25519 key pair in the PEM layout LoadKeyMaterial expects:
// PKCS#8 for the private key and PKIX for the public key.
func GenerateKeyMaterial() (*KeyMaterial, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generate ed25519 key")
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "marshal private key")
	}
	publicDER, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, errors.Wrap(err, "marshal public key")
	}

	return &KeyMaterial{
		PrivateKeyPEM: pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER}),
		PublicKeyPEM:  pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER}),
	}, nil
}

// SaveKeyMaterial writes the pair into the bucket at bucketURL under the given object names, the
// layout LoadKeyMaterial reads back.
func SaveKeyMaterial(ctx context.Context, bucketURL, privateName, publicName string, keys *KeyMaterial) error {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return errors.Wrapf(err, "open key bucket %s", bucketURL)
	}
	defer bucket.Close()

	if err := bucket.WriteAll(ctx, privateName, keys.PrivateKeyPEM, &blob.WriterOptions{ContentType: "application/x-pem-file"}); err != nil {
		return errors.Wrapf(err, "write private key %s", privateName)
	}
	if err := bucket.WriteAll(ctx, publicName, keys.PublicKeyPEM, &blob.WriterOptions{ContentType: "application/x-pem-file"}); err != nil {
		return errors.Wrapf(err, "write public key %s", publicName)
	}

	return nil
}

// DescribeKey names the kind of key held in a PEM block, using the same parsers the token
// service uses.
func DescribeKey(pemBytes []byte) (string, error) {
	if _, err := jwt.ParseEdPrivateKeyFromPEM(pemBytes); err == nil {
		return "ed25519 private key (PKCS#8)", nil
	}
	if _, err := jwt.ParseEdPublicKeyFromPEM(pemBytes); err == nil {
		return "ed25519 public key (PKIX)", nil
	}

	return "", errors.New("not an Ed25519 PEM key")
}
