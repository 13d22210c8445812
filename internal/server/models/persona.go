package models

// Persona is an account that can authenticate with either its LoginID or
// its Email plus a password.
type Persona struct {
	Lifecycle

	// LoginID is the national identity number (RUT). Unique.
	LoginID     string
	DisplayName string
	// Email is unique and also accepted as a login.
	Email string
	// PasswordHash holds the encoded output of the configured password
	// hasher, never the plaintext.
	PasswordHash string
	// Address is optional.
	Address string
}
