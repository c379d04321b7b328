// Package cryptox implements the cryptographic primitives of VeriSchol:
// custody of RSA private keys under a password-derived key, hybrid
// (envelope) encryption of record content, and salted content fingerprints.
//
// Every function is pure given its inputs; nothing here keeps state between
// calls. Failures of authenticated decryption are reported through the
// sentinels in the common package and never come with partial output.
package cryptox
