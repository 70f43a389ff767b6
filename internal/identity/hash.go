package identity

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashAttestor is a deterministic stand-in: keys and signatures are digests
// derived from the id, so anyone can forge them. Use it for reproducible
// simulations only.
type HashAttestor struct{}

// NewHashAttestor returns the deterministic stand-in.
func NewHashAttestor() HashAttestor {
	return HashAttestor{}
}

// PublicKey returns the derived public key for id.
func (HashAttestor) PublicKey(id string) string {
	return "pk_" + digest([]byte("public:"+id))
}

func (HashAttestor) Sign(id string, data []byte) (string, error) {
	return signature(id, data), nil
}

func (a HashAttestor) Verify(id, publicKey string, data []byte, sig string) bool {
	if publicKey != a.PublicKey(id) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sig), []byte(signature(id, data))) == 1
}

func signature(id string, data []byte) string {
	buf := make([]byte, 0, len(id)+len(data)+9)
	buf = append(buf, "private:"...)
	buf = append(buf, id...)
	buf = append(buf, 0)
	buf = append(buf, data...)
	return digest(buf)
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
