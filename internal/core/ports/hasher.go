package ports

import "go.trai.ch/lathe/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeFileHash hashes the content of a single file.
	ComputeFileHash(path string) (uint64, error)
	// ComputeInputHash hashes the task name, its composed actions and the content of its file_dep.
	ComputeInputHash(task *domain.Task, root string) (string, error)
	// ComputeOutputHash hashes the content of the given targets.
	ComputeOutputHash(outputs []string, root string) (string, error)
}
