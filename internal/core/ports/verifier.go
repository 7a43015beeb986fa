package ports

// Verifier defines the interface for checking target freshness.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_verifier.go -package=mocks -source=verifier.go
type Verifier interface {
	// VerifyOutputs reports whether every output exists below root
	// and is newer than every input.
	VerifyOutputs(root string, inputs, outputs []string) (bool, error)
}
