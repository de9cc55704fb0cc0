// Package rsakeys defines the value objects, errors and contracts of the RSA
// arithmetic core: public and private keys, derived key pairs, and the
// collaborators (prime source, padding scheme, block codec) that surround the
// modular arithmetic without being part of it.
package rsakeys
