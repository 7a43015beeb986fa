package app

import (
	"io"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
)

// LogOutput is the part of the logger the command line adjusts at startup.
type LogOutput interface {
	SetLevel(level domain.LogLevel)
	SetOutput(w io.Writer)
}

// Components contains the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
	Output LogOutput
}
