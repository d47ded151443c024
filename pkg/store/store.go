// Package store is the authoritative collection of analysis projects and
// run logs, plus every mutation the editor API needs. It is an explicit,
// dependency-injected state container: construct one, Load it from its KV
// backend, pass it to whatever owns the request loop, and Save at the
// boundaries you choose. Persistence is never an implicit side effect of a
// mutation.
//
// The store deliberately performs no business validation. An incomplete or
// invalid tree is legal mid-edit; validation is the save endpoint's job.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/store/kv"
)

// stateKey is the fixed namespace key the full snapshot lives under.
const stateKey = "profilenet/analysis-store"

// schemaVersion is bumped whenever the snapshot shape changes; Load
// refuses snapshots it does not understand instead of silently
// misreading them.
const schemaVersion = 1

// ErrNotFound is returned when an id lookup through the owning chain
// (project -> subject -> [relation] -> entity) fails at any link.
var ErrNotFound = errors.New("store: not found")

// projectIDSuffixLen is the random tail of a structural project id.
const projectIDSuffixLen = 7

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Store holds all projects and logs in memory. All mutations are
// copy-on-write replacements of the affected project subtree performed
// under the lock, so readers never observe a half-applied update.
type Store struct {
	mu       sync.RWMutex
	kv       kv.KV
	projects []common.AnalysisProject
	logs     []common.AnalysisLog

	now func() time.Time
}

func New(backend kv.KV) *Store {
	return &Store{
		kv:  backend,
		now: time.Now,
	}
}

type snapshot struct {
	Version  int                      `json:"version"`
	Projects []common.AnalysisProject `json:"projects"`
	Logs     []common.AnalysisLog     `json:"logs"`
}

// Load replaces the in-memory state with the persisted snapshot. A
// missing snapshot leaves the store empty; a snapshot with an unknown
// schema version is an error.
func (s *Store) Load() error {
	raw, err := s.kv.Get(stateKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != schemaVersion {
		return fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, schemaVersion)
	}

	s.mu.Lock()
	s.projects = snap.Projects
	s.logs = snap.Logs
	s.mu.Unlock()
	return nil
}

// Save serializes the full state (projects and logs) under the fixed
// namespace key.
func (s *Store) Save() error {
	s.mu.RLock()
	snap := snapshot{
		Version:  schemaVersion,
		Projects: s.projects,
		Logs:     s.logs,
	}
	raw, err := json.Marshal(snap)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.kv.Set(stateKey, raw)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// CreateProject allocates a new project owned by userID with status
// unavailable and an empty subject list. The returned id is derived from
// the user and the creation instant and never changes afterwards.
func (s *Store) CreateProject(userID, name string) (string, error) {
	suffix, err := gonanoid.Generate(suffixAlphabet, projectIDSuffixLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate project id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	id := fmt.Sprintf("%s_%d_%s", userID, s.now().UnixMilli(), suffix)
	s.projects = append(s.projects, common.AnalysisProject{
		ID:        id,
		Name:      name,
		Status:    common.StatusUnavailable,
		CreatedAt: now,
		UpdatedAt: now,
		Data:      []common.DataDomain{},
		Subjects:  []common.Subject{},
	})
	return id, nil
}

// UpdateProject merges the set fields of patch into the project and bumps
// UpdatedAt. The project id itself is immutable.
func (s *Store) UpdateProject(id string, patch ProjectPatch) error {
	return s.mutateProject(id, func(p *common.AnalysisProject) error {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Data != nil {
			p.Data = cloneDomains(*patch.Data)
		}
		if patch.StartDate != nil {
			p.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			p.EndDate = *patch.EndDate
		}
		if patch.AutoUpdate != nil {
			p.AutoUpdate = *patch.AutoUpdate
		}
		return nil
	})
}

// DeleteProject removes the project and cascades to every log that
// references it.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.projectIndex(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)

	kept := s.logs[:0]
	for _, l := range s.logs {
		if l.ProjectID != id {
			kept = append(kept, l)
		}
	}
	s.logs = kept
	return nil
}

// GetProject returns a deep copy of the project, so callers can never
// alias the store's internal state.
func (s *Store) GetProject(id string) (common.AnalysisProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.projectIndex(id)
	if idx < 0 {
		return common.AnalysisProject{}, ErrNotFound
	}
	return cloneProject(s.projects[idx]), nil
}

// Projects returns deep copies of all projects.
func (s *Store) Projects() []common.AnalysisProject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]common.AnalysisProject, len(s.projects))
	for i, p := range s.projects {
		out[i] = cloneProject(p)
	}
	return out
}

// SetProjectStatus transitions the project's lifecycle status.
func (s *Store) SetProjectStatus(id string, status common.ProjectStatus) error {
	return s.mutateProject(id, func(p *common.AnalysisProject) error {
		p.Status = status
		return nil
	})
}

// StartAnalysis transitions the project to analyzing, records the
// submitted scope, and appends one run log per selected data domain with
// progress 0. The caller is responsible for the precondition that data is
// non-empty and both dates are set, and for invoking the engine before
// this local mutation.
func (s *Store) StartAnalysis(id string, data []common.DataDomain, startDate, endDate string, autoUpdate bool) error {
	err := s.mutateProject(id, func(p *common.AnalysisProject) error {
		p.Status = common.StatusAnalyzing
		p.Data = cloneDomains(data)
		p.StartDate = startDate
		p.EndDate = endDate
		p.AutoUpdate = autoUpdate
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.timestamp()
	for _, d := range data {
		s.logs = append(s.logs, common.AnalysisLog{
			ID:           newLogID(),
			ProjectID:    id,
			Period:       startDate + "~" + endDate,
			Domain:       domainLabel(d.Domain),
			AnalysisType: typeLabel(d.Type),
			Progress:     0,
			Status:       common.LogAnalyzing,
			RequestedAt:  now,
			CompletedAt:  nil,
		})
	}
	return nil
}

// StopAnalysis transitions the project back to available and marks its
// in-flight logs failed.
func (s *Store) StopAnalysis(id string) error {
	err := s.mutateProject(id, func(p *common.AnalysisProject) error {
		p.Status = common.StatusAvailable
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		if s.logs[i].ProjectID == id && s.logs[i].Status == common.LogAnalyzing {
			s.logs[i].Status = common.LogFailed
		}
	}
	return nil
}

// mutateProject finds the project, applies fn to a deep copy, bumps
// UpdatedAt and swaps the copy in. Readers holding previously returned
// copies are unaffected.
func (s *Store) mutateProject(id string, fn func(p *common.AnalysisProject) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.projectIndex(id)
	if idx < 0 {
		return ErrNotFound
	}

	next := cloneProject(s.projects[idx])
	if err := fn(&next); err != nil {
		return err
	}
	next.UpdatedAt = s.timestamp()
	s.projects[idx] = next
	return nil
}

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func domainLabel(domain string) string {
	if label, ok := common.DomainLabels[domain]; ok {
		return label
	}
	return domain
}

func typeLabel(mediaType string) string {
	if label, ok := common.TypeLabels[mediaType]; ok {
		return label
	}
	return mediaType
}
