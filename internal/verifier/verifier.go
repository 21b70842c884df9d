package verifier

// Verifier interface for checking signatures over summary data
type Verifier interface {
	// VerifyDetached checks an armored detached signature over data
	VerifyDetached(data, sig []byte) error

	// VerifyCleartext checks a cleartext-signed document and returns the
	// signed payload
	VerifyCleartext(data []byte) ([]byte, error)
}
