// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/lathe/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs every action of the task in order, from the given working directory.
	// Subprocess output is copied to stdout and stderr.
	//
	// It returns an error if any action fails; later actions are not run.
	Execute(ctx context.Context, root string, task *domain.Task, stdout, stderr io.Writer) error
}
