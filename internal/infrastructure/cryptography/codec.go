package cryptography

import (
	"fmt"
	"math/big"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
	"github.com/MGTheTrain/toy-rsa/internal/pkg/config"
)

// PlaceholderByte replaces blocks the byte codec cannot map back to a single byte.
const PlaceholderByte byte = 0x00

// blockMarker prefixes every octet codec block so leading zero bytes survive
// the integer conversion.
const blockMarker byte = 0x01

// NewBlockCodec returns the codec registered under name.
func NewBlockCodec(name string) (rsakeys.BlockCodec, error) {
	switch name {
	case config.CodecByte:
		return ByteCodec{}, nil
	case config.CodecOctet:
		return OctetCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported codec %q", rsakeys.ErrInvalidArgument, name)
	}
}

// EncodeText maps every byte of text to one block, in order.
func EncodeText(text string) []*big.Int {
	blocks, _ := ByteCodec{}.Encode([]byte(text), nil)
	return blocks
}

// DecodeText maps every block back to a byte and concatenates them.
func DecodeText(blocks []*big.Int) string {
	message, _ := ByteCodec{}.Decode(blocks, nil)
	return string(message)
}

// ByteCodec produces one block per byte. It only round-trips when n > 255 and
// is kept for the reference demonstration; OctetCodec is the general scheme.
type ByteCodec struct{}

// Name returns the configuration name of the codec
func (ByteCodec) Name() string { return config.CodecByte }

// Encode returns one block per byte. The key is not consulted.
func (ByteCodec) Encode(message []byte, _ *rsakeys.PublicKey) ([]*big.Int, error) {
	blocks := make([]*big.Int, len(message))
	for i, b := range message {
		blocks[i] = big.NewInt(int64(b))
	}
	return blocks, nil
}

// Decode maps each block to its byte. Nil blocks and values outside [0, 255]
// become PlaceholderByte.
func (ByteCodec) Decode(blocks []*big.Int, _ *rsakeys.PublicKey) ([]byte, error) {
	message := make([]byte, len(blocks))
	for i, block := range blocks {
		if block == nil || block.Sign() < 0 || !block.IsUint64() || block.Uint64() > 0xff {
			message[i] = PlaceholderByte
			continue
		}
		message[i] = byte(block.Uint64())
	}
	return message, nil
}

// OctetCodec splits the message into blocks sized to the modulus. With
// k = (bitlen(n)-1)/8 every block carries a marker byte and k-1 payload bytes,
// so its value stays below 2^(8k) <= n.
type OctetCodec struct{}

// Name returns the configuration name of the codec
func (OctetCodec) Name() string { return config.CodecOctet }

// Encode splits message into marker-prefixed blocks.
func (OctetCodec) Encode(message []byte, publicKey *rsakeys.PublicKey) ([]*big.Int, error) {
	k, err := octetBlockSize(publicKey)
	if err != nil {
		return nil, err
	}
	payload := k - 1

	blocks := make([]*big.Int, 0, (len(message)+payload-1)/payload)
	for start := 0; start < len(message); start += payload {
		end := min(start+payload, len(message))

		buf := make([]byte, 0, end-start+1)
		buf = append(buf, blockMarker)
		buf = append(buf, message[start:end]...)
		blocks = append(blocks, new(big.Int).SetBytes(buf))
	}
	return blocks, nil
}

// Decode strips the marker of every block and concatenates the payloads.
func (OctetCodec) Decode(blocks []*big.Int, publicKey *rsakeys.PublicKey) ([]byte, error) {
	k, err := octetBlockSize(publicKey)
	if err != nil {
		return nil, err
	}

	message := make([]byte, 0, len(blocks)*(k-1))
	for i, block := range blocks {
		if block == nil || block.Sign() <= 0 {
			return nil, fmt.Errorf("%w: block %d carries no marker", rsakeys.ErrMalformedBlock, i)
		}
		raw := block.Bytes()
		if raw[0] != blockMarker || len(raw) > k {
			return nil, fmt.Errorf("%w: block %d carries no marker", rsakeys.ErrMalformedBlock, i)
		}
		message = append(message, raw[1:]...)
	}
	return message, nil
}

func octetBlockSize(publicKey *rsakeys.PublicKey) (int, error) {
	if err := publicKey.Validate(); err != nil {
		return 0, err
	}
	bits := publicKey.N().BitLen()
	k := (bits - 1) / 8
	if k < 2 {
		return 0, fmt.Errorf("%w: %d-bit modulus, octet codec needs at least 17 bits", rsakeys.ErrModulusTooSmall, bits)
	}
	return k, nil
}
