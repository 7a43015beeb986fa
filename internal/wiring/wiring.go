// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lathe/internal/adapters/cas"
	_ "go.trai.ch/lathe/internal/adapters/config"
	_ "go.trai.ch/lathe/internal/adapters/fs"
	_ "go.trai.ch/lathe/internal/adapters/logger"
	_ "go.trai.ch/lathe/internal/adapters/pkgconfig"
	_ "go.trai.ch/lathe/internal/adapters/shell"
	_ "go.trai.ch/lathe/internal/adapters/telemetry"
	_ "go.trai.ch/lathe/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/lathe/internal/app"
	_ "go.trai.ch/lathe/internal/engine/planner"
	_ "go.trai.ch/lathe/internal/engine/scheduler"
)
