package identity

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// KeyRing signs with secp256k1 ECDSA keys. Public keys and signatures travel
// as base58 text so they never collide with wire delimiters.
type KeyRing struct {
	mu   sync.RWMutex
	keys map[string]*btcec.PrivateKey
}

// NewKeyRing returns an empty key ring.
func NewKeyRing() *KeyRing {
	return &KeyRing{keys: make(map[string]*btcec.PrivateKey)}
}

// Generate creates a key pair for id, replacing any existing one, and
// returns the encoded public key.
func (k *KeyRing) Generate(id string) (string, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return "", fmt.Errorf("generate key for %s: %w", id, err)
	}
	k.mu.Lock()
	k.keys[id] = priv
	k.mu.Unlock()
	return encodePublicKey(priv.PubKey()), nil
}

// Import installs a raw 32-byte private key for id and returns the encoded public key.
func (k *KeyRing) Import(id string, secret []byte) (string, error) {
	if len(secret) != btcec.PrivKeyBytesLen {
		return "", fmt.Errorf("import key for %s: want %d bytes, got %d", id, btcec.PrivKeyBytesLen, len(secret))
	}
	priv, pub := btcec.PrivKeyFromBytes(secret)
	k.mu.Lock()
	k.keys[id] = priv
	k.mu.Unlock()
	return encodePublicKey(pub), nil
}

// PublicKey returns the encoded public key held for id.
func (k *KeyRing) PublicKey(id string) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	priv, ok := k.keys[id]
	if !ok {
		return "", false
	}
	return encodePublicKey(priv.PubKey()), true
}

func (k *KeyRing) Sign(id string, data []byte) (string, error) {
	k.mu.RLock()
	priv, ok := k.keys[id]
	k.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownIdentity, id)
	}
	sig := ecdsa.Sign(priv, chainhash.DoubleHashB(data))
	return base58.Encode(sig.Serialize()), nil
}

func (k *KeyRing) Verify(_ string, publicKey string, data []byte, signature string) bool {
	rawKey := base58.Decode(publicKey)
	if len(rawKey) == 0 {
		return false
	}
	pub, err := btcec.ParsePubKey(rawKey)
	if err != nil {
		return false
	}
	rawSig := base58.Decode(signature)
	if len(rawSig) == 0 {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(rawSig)
	if err != nil {
		return false
	}
	return sig.Verify(chainhash.DoubleHashB(data), pub)
}

func encodePublicKey(pub *btcec.PublicKey) string {
	return base58.Encode(pub.SerializeCompressed())
}
