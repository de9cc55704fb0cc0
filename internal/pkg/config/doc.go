// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file and environment variables, validated with
// go-playground/validator and handed to the logger, the database layer and the
// RSA key derivation code. Prime numbers and the public exponent are injected
// from here rather than embedded in the arithmetic.
package config
