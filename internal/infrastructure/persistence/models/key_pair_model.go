package models

import (
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"
)

// KeyPairModel is the GORM database model for derived key pairs (infrastructure concern)
type KeyPairModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Modulus         string    `gorm:"not null;type:text"`
	PublicExponent  string    `gorm:"not null;type:text"`
	PrivateExponent string    `gorm:"not null;type:text"`
	ModulusBits     int       `gorm:"not null;type:integer"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (KeyPairModel) TableName() string {
	return "key_pairs"
}

// ToDomain converts GORM model to domain entity
func (m *KeyPairModel) ToDomain() (*rsakeys.KeyPair, error) {
	n, err := parseDecimal("modulus", m.Modulus)
	if err != nil {
		return nil, err
	}
	e, err := parseDecimal("public exponent", m.PublicExponent)
	if err != nil {
		return nil, err
	}
	d, err := parseDecimal("private exponent", m.PrivateExponent)
	if err != nil {
		return nil, err
	}

	return &rsakeys.KeyPair{
		ID:              m.ID,
		Public:          rsakeys.NewPublicKey(n, e),
		Private:         rsakeys.NewPrivateKey(n, d),
		DateTimeCreated: m.DateTimeCreated,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *KeyPairModel) FromDomain(kp *rsakeys.KeyPair) {
	n := kp.Public.N()
	m.ID = kp.ID
	m.Modulus = n.String()
	m.PublicExponent = kp.Public.E().String()
	m.PrivateExponent = kp.Private.D().String()
	m.ModulusBits = n.BitLen()
	m.DateTimeCreated = kp.DateTimeCreated
}

func parseDecimal(field, value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("corrupt %s column: %q", field, value)
	}
	return v, nil
}
