// Package planner assembles the task graph of a project.
package planner

import (
	"os"
	"path/filepath"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/lathe/internal/engine/emitter"
	"go.trai.ch/zerr"
)

// Source patterns, discovered in this order.
const (
	valaPattern   = "*.vala"
	cPattern      = "*.c"
	headerPattern = "*.h"
	vapiPattern   = "*.vapi"
)

// Planner describes modules and turns them into a linked, validated graph.
type Planner struct {
	discoverer ports.SourceDiscoverer
}

// New creates a new Planner.
func New(discoverer ports.SourceDiscoverer) *Planner {
	return &Planner{discoverer: discoverer}
}

// Describe builds a descriptor for every module of the project, in declaration
// order, with module dependencies resolved.
func (p *Planner) Describe(project *domain.Project) ([]*domain.Module, error) {
	modules := make([]*domain.Module, 0, len(project.Modules))
	byDir := make(map[string]*domain.Module, len(project.Modules))

	for i := range project.Modules {
		spec := project.Modules[i]
		if _, exists := byDir[spec.Dir]; exists {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateModule, "cannot describe project"), "module", spec.Dir)
		}

		m, err := p.describe(project, spec)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
		byDir[spec.Dir] = m
	}

	for i, m := range modules {
		spec := project.Modules[i]
		deps := make([]*domain.Module, 0, len(spec.DependsOn))
		for _, name := range spec.DependsOn {
			dep, ok := byDir[name]
			if !ok {
				err := zerr.With(zerr.Wrap(domain.ErrUnknownModule, "cannot resolve dependency"), "module", spec.Dir)
				return nil, zerr.With(err, "dependency", name)
			}
			if dep == m {
				err := zerr.With(zerr.Wrap(domain.ErrCycleDetected, "cannot resolve dependency"), "module", spec.Dir)
				return nil, zerr.With(err, "cycle", spec.Dir+" -> "+spec.Dir)
			}
			if !dep.IsLibrary() {
				err := zerr.With(zerr.Wrap(domain.ErrDependencyNotLibrary, "cannot resolve dependency"), "module", spec.Dir)
				return nil, zerr.With(err, "dependency", name)
			}
			deps = append(deps, dep)
		}
		m.SetDependencies(deps...)
	}

	return modules, nil
}

func (p *Planner) describe(project *domain.Project, spec domain.ModuleSpec) (*domain.Module, error) {
	if spec.Dir == "" {
		return nil, zerr.Wrap(domain.ErrMissingModuleDir, "cannot describe module")
	}

	dir := filepath.Join(project.Root, spec.Dir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrModuleDirNotFound, "cannot describe module"), "dir", dir)
	}

	var sources domain.SourceSet
	var err error
	if sources.Vala, sources.ValaNames, err = p.discover(project.Root, dir, valaPattern); err != nil {
		return nil, err
	}
	if sources.C, sources.CNames, err = p.discover(project.Root, dir, cPattern); err != nil {
		return nil, err
	}
	if sources.Headers, _, err = p.discover(project.Root, dir, headerPattern); err != nil {
		return nil, err
	}
	if sources.Vapi, _, err = p.discover(project.Root, dir, vapiPattern); err != nil {
		return nil, err
	}

	return domain.NewModule(spec, project.BuildDir, sources, project.Platform)
}

// discover returns the matching paths relative to root, and their bare names.
func (p *Planner) discover(root, dir, pattern string) (paths, names []string, err error) {
	found, err := p.discoverer.SourcePaths(dir, pattern)
	if err != nil {
		return nil, nil, err
	}
	names, err = p.discoverer.SourceNames(dir, pattern)
	if err != nil {
		return nil, nil, err
	}

	paths = make([]string, len(found))
	for i, f := range found {
		rel, relErr := filepath.Rel(root, f)
		if relErr != nil {
			return nil, nil, zerr.With(zerr.Wrap(relErr, "cannot relativize source path"), "path", f)
		}
		paths[i] = rel
	}
	return paths, names, nil
}

// Plan describes the project and returns its validated task graph.
func (p *Planner) Plan(project *domain.Project) (*domain.Graph, error) {
	modules, err := p.Describe(project)
	if err != nil {
		return nil, err
	}

	e := emitter.New(project.Toolchain, project.Platform)
	g := domain.NewGraph()
	g.SetRoot(project.Root)

	for _, m := range modules {
		for task := range e.Tasks(m) {
			if err := g.AddTask(&task); err != nil {
				return nil, err
			}
		}
	}

	if err := g.Link(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
