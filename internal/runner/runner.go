// Package runner polls the engine for every project that is currently
// analyzing and folds the reported progress into the store's run logs.
// It is the only place that flips a project from analyzing back to
// available when a run finishes on the engine side.
package runner

import (
	"context"
	"time"

	"github.com/profilenet/backend/internal/events"
	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/engine"
	"github.com/profilenet/backend/pkg/logger"
	"github.com/profilenet/backend/pkg/store"
	"github.com/profilenet/backend/pkg/wire"
)

type Runner struct {
	store    *store.Store
	engine   engine.Client
	events   *events.Publisher
	interval time.Duration
}

func New(s *store.Store, e engine.Client, ev *events.Publisher, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Runner{
		store:    s,
		engine:   e,
		events:   ev,
		interval: interval,
	}
}

// Start launches the polling loop. It returns immediately; the loop
// stops when ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.poll(ctx)
			}
		}
	}()
}

func (r *Runner) poll(ctx context.Context) {
	for _, p := range r.store.Projects() {
		if p.Status != common.StatusAnalyzing {
			continue
		}

		resp, err := r.engine.Monitoring(ctx, p.ID)
		if err != nil {
			logger.Warn("Monitoring poll failed", "project", p.ID, "err", err)
			continue
		}

		r.fold(p, resp)
	}
}

// fold applies one monitoring response to the project's run logs and,
// on a terminal engine status, to the project itself.
func (r *Runner) fold(p common.AnalysisProject, resp *wire.MonitoringResponse) {
	changed := false
	for _, log := range r.store.ProjectLogs(p.ID) {
		if log.Status != common.LogAnalyzing && log.Status != common.LogPending {
			continue
		}

		progress := progressForLog(resp, log)
		status := common.LogStatus("")
		switch resp.Status {
		case wire.RunCompleted:
			status = common.LogCompleted
			progress = 100
		case wire.RunFailed:
			status = common.LogFailed
			if progress < log.Progress {
				progress = log.Progress
			}
		default:
			if progress < log.Progress {
				// Progress never moves backwards while the run is in
				// flight; stale engine data is skipped. Terminal
				// statuses above always land.
				continue
			}
		}

		if err := r.store.UpdateLogProgress(log.ID, progress, status); err != nil {
			logger.Error("Failed to update run log", "log", log.ID, "err", err)
			continue
		}
		changed = true
	}

	switch resp.Status {
	case wire.RunCompleted:
		if err := r.store.SetProjectStatus(p.ID, common.StatusAvailable); err != nil {
			logger.Error("Failed to finish analysis", "project", p.ID, "err", err)
		} else {
			changed = true
			r.events.Publish(events.TopicCompleted, events.Event{
				ProjectID: p.ID,
				Status:    string(common.StatusAvailable),
				Progress:  100,
			})
		}
	case wire.RunFailed:
		if err := r.store.StopAnalysis(p.ID); err != nil {
			logger.Error("Failed to stop failed analysis", "project", p.ID, "err", err)
		} else {
			changed = true
			r.events.Publish(events.TopicFailed, events.Event{
				ProjectID: p.ID,
				Status:    string(common.LogFailed),
				Progress:  resp.OverallProgress,
			})
		}
	default:
		if changed {
			r.events.Publish(events.TopicProgress, events.Event{
				ProjectID: p.ID,
				Status:    string(common.StatusAnalyzing),
				Progress:  resp.OverallProgress,
			})
		}
	}

	if changed {
		if err := r.store.Save(); err != nil {
			logger.Error("Failed to persist store after poll", "project", p.ID, "err", err)
		}
	}
}

// progressForLog averages the monitoring rows matching the log's data
// domain and media type. Logs carry display labels while the engine
// reports wire codes, so both sides are resolved to internal tokens
// first. Falls back to the overall figure when nothing matches.
func progressForLog(resp *wire.MonitoringResponse, log common.AnalysisLog) int {
	domain, okD := internalDomain(log.Domain)
	mediaType, okT := internalType(log.AnalysisType)
	if !okD || !okT {
		return resp.OverallProgress
	}

	code := domain
	if c, ok := wire.DomainCodes[domain]; ok {
		code = c
	}

	sum, n := 0, 0
	for _, row := range resp.Analyses {
		if row.Domain == code && row.Type == mediaType {
			sum += row.Progress
			n++
		}
	}
	if n == 0 {
		return resp.OverallProgress
	}
	return sum / n
}

func internalDomain(label string) (string, bool) {
	for domain, l := range common.DomainLabels {
		if l == label {
			return domain, true
		}
	}
	return "", false
}

func internalType(label string) (string, bool) {
	for mediaType, l := range common.TypeLabels {
		if l == label {
			return mediaType, true
		}
	}
	return "", false
}
