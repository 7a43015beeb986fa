package scheduler

import (
	"maps"

	"go.trai.ch/lathe/internal/core/domain"
)

// GetTaskStatusMap returns a snapshot of the task statuses of the last run.
func (s *Scheduler) GetTaskStatusMap() map[domain.InternedString]TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.taskStatus)
}
