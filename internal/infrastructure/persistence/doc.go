// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to store derived RSA key pairs in SQLite or
// PostgreSQL. Key material is stored as decimal strings so values of any size
// survive the round trip.
package persistence
