package ports

import "go.trai.ch/lathe/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. An explicit path wins; otherwise the loader
	// looks for lathe.yaml or lathe.hcl in cwd and its parents.
	Load(cwd, path string) (*domain.Project, error)
}
