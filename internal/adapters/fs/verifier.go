package fs

import (
	"os"
	"time"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks that targets exist and are not older than their file_dep.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyOutputs reports whether every output exists below root and is at least
// as new as the newest input. Outputs are checked with Lstat so a symlink is judged
// by its own timestamp rather than by the file it points at.
func (v *Verifier) VerifyOutputs(root string, inputs, outputs []string) (bool, error) {
	var newest time.Time
	for _, input := range inputs {
		path := domain.ResolvePath(root, input)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}

	for _, output := range outputs {
		path := domain.ResolvePath(root, output)
		info, err := os.Lstat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
		}
		if info.ModTime().Before(newest) {
			return false, nil
		}
	}
	return true, nil
}
