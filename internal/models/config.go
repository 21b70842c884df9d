package models

// IngestConfig contains configuration for a parse or load run
type IngestConfig struct {
	// Input
	InputPath string // empty means stdin

	// Integrity check, verified against the raw input before parsing
	Checksum string // "algo:hexdigest"

	// Signature verification
	GPGKeyPath    string // public keyring; enables verification
	SignaturePath string // detached signature; empty means cleartext-signed input

	// Output
	List bool // print one line per accepted package

	// Load target
	DBPath string
}
