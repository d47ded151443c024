package store

import (
	"github.com/google/uuid"

	"github.com/profilenet/backend/pkg/common"
)

func newLogID() string {
	return uuid.NewString()
}

// AddLog appends a run record to the ledger, assigning it a fresh id.
func (s *Store) AddLog(log common.AnalysisLog) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = newLogID()
	s.logs = append(s.logs, log)
	return log.ID
}

// UpdateLogProgress updates a log's progress and, when status is
// non-empty, its status. CompletedAt is stamped only on the transition to
// completed.
func (s *Store) UpdateLogProgress(logID string, progress int, status common.LogStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.logs {
		if s.logs[i].ID != logID {
			continue
		}
		s.logs[i].Progress = progress
		if status != "" {
			if status == common.LogCompleted && s.logs[i].Status != common.LogCompleted {
				done := s.timestamp()
				s.logs[i].CompletedAt = &done
			}
			s.logs[i].Status = status
		}
		return nil
	}
	return ErrNotFound
}

// Logs returns a copy of the full ledger.
func (s *Store) Logs() []common.AnalysisLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.AnalysisLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// ProjectLogs returns the ledger entries for one project.
func (s *Store) ProjectLogs(projectID string) []common.AnalysisLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []common.AnalysisLog
	for _, l := range s.logs {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out
}
