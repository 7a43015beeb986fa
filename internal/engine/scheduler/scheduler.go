// Package scheduler implements the task execution scheduler.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusCached indicates the task was skipped because it was up to date.
	StatusCached TaskStatus = "Cached"
)

// AllTargets selects every task of the graph.
const AllTargets = "all"

// Options control one scheduler run.
type Options struct {
	// Targets are task names or module dirs. Empty or "all" runs everything.
	Targets []string
	// Jobs is the number of tasks run in parallel. Zero means runtime.NumCPU().
	Jobs int
	// Force runs every selected task regardless of its recorded state.
	Force bool
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	executor  ports.Executor
	hasher    ports.Hasher
	verifier  ports.Verifier
	telemetry ports.Telemetry
	logger    ports.Logger

	mu         sync.RWMutex
	taskStatus map[domain.InternedString]TaskStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	executor ports.Executor,
	hasher ports.Hasher,
	verifier ports.Verifier,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		executor:   executor,
		hasher:     hasher,
		verifier:   verifier,
		telemetry:  telemetry,
		logger:     logger,
		taskStatus: make(map[domain.InternedString]TaskStatus),
	}
}

// initTaskStatuses resets the status map to the tasks of this run, all Pending.
func (s *Scheduler) initTaskStatuses(tasks []domain.InternedString) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.taskStatus = make(map[domain.InternedString]TaskStatus, len(tasks))
	for _, task := range tasks {
		s.taskStatus[task] = StatusPending
	}
}

// updateStatus updates the status of a task.
func (s *Scheduler) updateStatus(name domain.InternedString, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[name] = status
}

// Counts returns how many tasks of the last run ended in each status.
func (s *Scheduler) Counts() map[TaskStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[TaskStatus]int)
	for _, status := range s.taskStatus {
		counts[status]++
	}
	return counts
}

// Run executes the selected tasks of graph and their dependencies.
// Build state is read from and written to store.
// A failed task halts its dependents; independent tasks still run.
// An unknown package cancels the whole run.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, store ports.BuildInfoStore, opts Options) error {
	// Explicitly validate the graph to ensure executionOrder is populated
	if err := graph.Validate(); err != nil {
		return err
	}

	state, err := s.newRunState(ctx, graph, store, opts)
	if err != nil {
		return err
	}
	defer state.cancel()

	s.initTaskStatuses(state.allTasks)

	return state.runExecutionLoop()
}

type result struct {
	task      domain.InternedString
	err       error
	skipped   bool
	inputHash string
}

type schedulerRunState struct {
	graph       *domain.Graph
	store       ports.BuildInfoStore
	inDegree    map[domain.InternedString]int
	tasks       map[domain.InternedString]domain.Task
	ready       []domain.InternedString
	active      int
	resultsCh   chan result
	errs        error
	parent      context.Context
	ctx         context.Context
	cancel      context.CancelFunc
	parallelism int
	s           *Scheduler
	allTasks    []domain.InternedString
	force       bool
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	store ports.BuildInfoStore,
	opts Options,
) (*schedulerRunState, error) {
	tasksToRun, err := resolveTasksToRun(graph, opts.Targets)
	if err != nil {
		return nil, err
	}

	parallelism := opts.Jobs
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	inDegree := make(map[domain.InternedString]int, len(tasksToRun))
	tasks := make(map[domain.InternedString]domain.Task, len(tasksToRun))
	allTasks := make([]domain.InternedString, 0, len(tasksToRun))
	var ready []domain.InternedString

	// Walk keeps the ready queue in execution order, so runs with one job are deterministic.
	for task := range graph.Walk() {
		if !tasksToRun[task.Name] {
			continue
		}
		tasks[task.Name] = task
		allTasks = append(allTasks, task.Name)

		// Count only dependencies that are part of this run
		degree := 0
		for _, dep := range task.Dependencies {
			if tasksToRun[dep] {
				degree++
			}
		}
		inDegree[task.Name] = degree
		if degree == 0 {
			ready = append(ready, task.Name)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	return &schedulerRunState{
		graph:       graph,
		store:       store,
		inDegree:    inDegree,
		tasks:       tasks,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		parent:      ctx,
		ctx:         runCtx,
		cancel:      cancel,
		parallelism: parallelism,
		s:           s,
		allTasks:    allTasks,
		force:       opts.Force,
	}, nil
}

func (state *schedulerRunState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
			if state.active > 0 {
				state.handleResult(<-state.resultsCh)
			}
		}
	}

	if err := state.parent.Err(); err != nil {
		state.errs = errors.Join(state.errs, err)
	}

	return state.errs
}

// resolveTasksToRun returns the selected tasks and everything they depend on.
func resolveTasksToRun(graph *domain.Graph, targetNames []string) (map[domain.InternedString]bool, error) {
	tasksToRun := make(map[domain.InternedString]bool, graph.TaskCount())

	if len(targetNames) == 0 || slices.Contains(targetNames, AllTargets) {
		for task := range graph.Walk() {
			tasksToRun[task.Name] = true
		}
		return tasksToRun, nil
	}

	var queue []domain.InternedString
	for _, nameStr := range targetNames {
		name := domain.NewInternedString(nameStr)
		if _, ok := graph.GetTask(name); ok {
			queue = append(queue, name)
			continue
		}
		moduleTasks := graph.ModuleTasks(nameStr)
		if len(moduleTasks) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "cannot resolve target"), "target", nameStr)
		}
		queue = append(queue, moduleTasks...)
	}

	// Use a queue for BFS to collect all dependencies
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if tasksToRun[current] {
			continue
		}
		tasksToRun[current] = true

		task, _ := graph.GetTask(current)
		queue = append(queue, task.Dependencies...)
	}

	return tasksToRun, nil
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(taskName, StatusRunning)

		t := state.tasks[taskName]
		go state.executeTask(&t)
	}
}

func (state *schedulerRunState) executeTask(t *domain.Task) {
	// The vertex is completed before the result is sent so that the run
	// never ends with an open vertex.
	res := func() result {
		ctx, vertex := state.s.telemetry.Record(state.ctx, t.Name.String())
		root := state.graph.Root()

		skipped, hash, err := state.checkTaskCache(t, root)
		if err != nil {
			vertex.Complete(err)
			return result{task: t.Name, err: err}
		}
		if skipped {
			state.s.logger.Debug(fmt.Sprintf("%s is up to date", t.Name))
			vertex.Cached()
			return result{task: t.Name, skipped: true, inputHash: hash}
		}

		err = state.s.executor.Execute(ctx, root, t, vertex.Stdout(), vertex.Stderr())
		vertex.Complete(err)
		return result{task: t.Name, err: err, inputHash: hash}
	}()

	state.resultsCh <- res
}

// checkTaskCache reports whether t is up to date and returns its input hash.
// Tasks without file_dep are never up to date.
func (state *schedulerRunState) checkTaskCache(t *domain.Task, root string) (skipped bool, hash string, err error) {
	hash, err = state.s.hasher.ComputeInputHash(t, root)
	if err != nil {
		return false, "", zerr.Wrap(err, domain.ErrInputHashComputationFailed.Error())
	}

	if state.force || len(t.Inputs) == 0 {
		return false, hash, nil
	}

	info, err := state.store.Get(t.Name.String())
	if err != nil {
		return false, hash, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if info == nil || info.InputHash != hash {
		return false, hash, nil
	}

	inputs := domain.Strings(t.Inputs)
	outputs := domain.Strings(t.Outputs)
	fresh, err := state.s.verifier.VerifyOutputs(root, inputs, outputs)
	if err != nil || !fresh {
		return false, hash, nil
	}

	if len(outputs) > 0 {
		outputHash, err := state.s.hasher.ComputeOutputHash(outputs, root)
		if err != nil || outputHash != info.OutputHash {
			return false, hash, nil
		}
	}

	return true, hash, nil
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		// Both the sentinel and the cause stay reachable through errors.Is.
		enhancedErr := zerr.With(fmt.Errorf("%w: %w", domain.ErrTaskExecutionFailed, res.err), "task", res.task.String())
		state.errs = errors.Join(state.errs, enhancedErr)
		state.s.updateStatus(res.task, StatusFailed)
		state.s.logger.Error(enhancedErr)

		if errors.Is(res.err, domain.ErrPackageNotFound) {
			state.cancel()
		}
		return
	}

	state.handleSuccess(res)
}

func (state *schedulerRunState) handleSuccess(res result) {
	if res.skipped {
		state.s.updateStatus(res.task, StatusCached)
	} else {
		state.s.updateStatus(res.task, StatusCompleted)
		state.recordBuildInfo(res)
	}

	for _, dep := range state.graph.Dependents(res.task) {
		// Only consider dependents that are part of the current execution
		if _, ok := state.tasks[dep]; ok {
			state.inDegree[dep]--
			if state.inDegree[dep] == 0 {
				state.ready = append(state.ready, dep)
			}
		}
	}
}

// recordBuildInfo stores the hashes of a finished task. A failed write only costs
// a rebuild next time, so it is logged and not returned.
func (state *schedulerRunState) recordBuildInfo(res result) {
	task := state.tasks[res.task]
	if len(task.Inputs) == 0 {
		return
	}

	outputHash := ""
	if outputs := domain.Strings(task.Outputs); len(outputs) > 0 {
		h, err := state.s.hasher.ComputeOutputHash(outputs, state.graph.Root())
		if err != nil {
			state.s.logger.Warn(fmt.Sprintf("%s: %v", res.task, zerr.Wrap(err, domain.ErrOutputHashComputationFailed.Error())))
			return
		}
		outputHash = h
	}

	err := state.store.Put(domain.BuildInfo{
		TaskName:   res.task.String(),
		InputHash:  res.inputHash,
		OutputHash: outputHash,
		Timestamp:  time.Now(),
	})
	if err != nil {
		state.s.logger.Warn(fmt.Sprintf("%s: %v", res.task, err))
	}
}
