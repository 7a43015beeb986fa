package cas

import (
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StoreOpener = (*Opener)(nil)

// Opener selects the state backend of a build root.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns the store kept under <buildRoot>/.lathe by backend.
func (o *Opener) Open(buildRoot string, backend domain.StateBackend) (ports.BuildInfoStore, error) {
	switch backend {
	case domain.StateBackendJSON, "":
		return NewStore(domain.StorePath(buildRoot)), nil
	case domain.StateBackendSQLite:
		return NewSQLiteStore(domain.StateDBPath(buildRoot))
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidStateBackend, "cannot open state"), "backend", string(backend))
	}
}
