package validators

import (
	"github.com/go-playground/validator/v10"
)

// Names of the supported message codecs
const (
	CodecByte  = "byte"
	CodecOctet = "octet"
)

// CodecValidation validates that the field names a supported message codec.
func CodecValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case CodecByte, CodecOctet:
		return true
	default:
		return false
	}
}
