package web

// ExampleSecret is the Base32 secret shown in usage hints.
const ExampleSecret = "JBSWY3DPEHPK3PXP"

// Messages of the JSON error bodies.
const (
	msgMissingSecret = "Missing secret parameter"
	msgInvalidSecret = "Invalid secret key format"
)

// MissingSecretError reports a request without a secret in its path.
// Origin is the scheme and host the usage hints point at.
type MissingSecretError struct {
	Origin string
}

func (e *MissingSecretError) Error() string {
	return msgMissingSecret
}

// Usage is the URL template callers should follow.
func (e *MissingSecretError) Usage() string {
	return e.Origin + "/YOUR_SECRET_KEY?format=json"
}

// Example is a ready-to-use URL with a sample secret.
func (e *MissingSecretError) Example() string {
	return e.Origin + "/" + ExampleSecret + "?format=json"
}
