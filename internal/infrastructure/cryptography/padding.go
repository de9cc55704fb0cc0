package cryptography

import (
	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
)

// NoPadding is the identity PaddingScheme. It provides no semantic security and
// only marks where a real scheme plugs in.
type NoPadding struct{}

var _ rsakeys.PaddingScheme = NoPadding{}

// Pad returns a copy of message
func (NoPadding) Pad(message []byte, _ *rsakeys.PublicKey) ([]byte, error) {
	return append([]byte(nil), message...), nil
}

// Unpad returns a copy of message
func (NoPadding) Unpad(message []byte, _ *rsakeys.PublicKey) ([]byte, error) {
	return append([]byte(nil), message...), nil
}
