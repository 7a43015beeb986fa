// Package config provides the configuration loader for lathe.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for lathe.yaml and lathe.hcl.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the project configuration. A non-empty path is used as is, relative to cwd.
// Otherwise the nearest directory from cwd upwards holding a config file wins.
func (l *Loader) Load(cwd, path string) (*domain.Project, error) {
	configPath := path
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			configPath = filepath.Join(cwd, configPath)
		}
	} else {
		found, err := l.findConfiguration(cwd)
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	file, err := readConfig(configPath)
	if err != nil {
		return nil, err
	}

	return buildProject(filepath.Dir(configPath), file)
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		yamlPath := filepath.Join(currentDir, domain.YAMLConfigName)
		hclPath := filepath.Join(currentDir, domain.HCLConfigName)
		hasYAML := fileExists(yamlPath)
		hasHCL := fileExists(hclPath)

		switch {
		case hasYAML && hasHCL:
			l.Logger.Warn(fmt.Sprintf("both %s and %s found in %s, using %s",
				domain.YAMLConfigName, domain.HCLConfigName, currentDir, domain.YAMLConfigName))
			return yamlPath, nil
		case hasYAML:
			return yamlPath, nil
		case hasHCL:
			return hclPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no configuration"), "cwd", cwd)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func readConfig(path string) (Lathefile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return Lathefile{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if filepath.Ext(path) == ".hcl" {
		return parseHCL(path, data)
	}

	var file Lathefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Lathefile{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return file, nil
}

func parseHCL(path string, data []byte) (Lathefile, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return Lathefile{}, zerr.With(zerr.Wrap(diags, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	var parsed hclLathefile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return Lathefile{}, zerr.With(zerr.Wrap(diags, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return parsed.toLathefile(), nil
}

func buildProject(root string, file Lathefile) (*domain.Project, error) {
	toolchain := domain.DefaultToolchain()
	if file.CC != "" {
		toolchain.CC = file.CC
	}
	if file.Translator != "" {
		toolchain.Translator = file.Translator
	}

	state := domain.StateBackend(file.State)
	if state == "" {
		state = domain.StateBackendJSON
	}
	if !state.Valid() {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidStateBackend, "invalid config"), "state", file.State)
	}

	project := &domain.Project{
		Root:      root,
		BuildDir:  resolveBuildDir(file.Build),
		Platform:  file.Platform,
		Toolchain: toolchain,
		State:     state,
		Modules:   make([]domain.ModuleSpec, 0, len(file.Modules)),
	}
	if project.Platform == "" {
		project.Platform = domain.DefaultPlatform()
	}

	for i := range file.Modules {
		spec, err := buildModuleSpec(&file.Modules[i])
		if err != nil {
			return nil, zerr.With(err, "module_index", strconv.Itoa(i))
		}
		project.Modules = append(project.Modules, spec)
	}

	return project, nil
}

func resolveBuildDir(dir string) string {
	if dir == "" {
		return domain.DefaultBuildDir
	}
	return filepath.Clean(dir)
}

func buildModuleSpec(dto *ModuleDTO) (domain.ModuleSpec, error) {
	dir := filepath.Clean(strings.TrimSpace(dto.Dir))
	if strings.TrimSpace(dto.Dir) == "" {
		return domain.ModuleSpec{}, zerr.Wrap(domain.ErrMissingModuleDir, "invalid module")
	}
	if dto.Library != "" && dto.Version == "" {
		err := zerr.With(zerr.Wrap(domain.ErrLibraryVersionRequired, "invalid module"), "module", dir)
		return domain.ModuleSpec{}, zerr.With(err, "library", dto.Library)
	}

	return domain.ModuleSpec{
		Dir:              dir,
		Library:          dto.Library,
		Version:          dto.Version,
		SOName:           dto.SOName,
		Packages:         compactStrings(dto.Packages),
		DependsOn:        compactStrings(dto.DependsOn),
		TranslateOptions: dropEmpty(dto.TranslateOptions),
		CompileOptions:   dropEmpty(dto.CompileOptions),
		LinkFlags:        dropEmpty(dto.LinkFlags),
		BinOptions:       dropEmpty(dto.BinOptions),
	}, nil
}

// compactStrings trims names and drops blanks and repeats, keeping first occurrence order.
func compactStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	res := make([]string, 0, len(strs))
	for _, s := range strs {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(res, s) {
			continue
		}
		res = append(res, s)
	}
	return res
}

// dropEmpty removes blank option strings. Repeats are kept since options may legitimately repeat.
func dropEmpty(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	res := make([]string, 0, len(strs))
	for _, s := range strs {
		if strings.TrimSpace(s) != "" {
			res = append(res, s)
		}
	}
	return res
}
