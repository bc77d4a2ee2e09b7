package service

import (
	"context"
	"sort"
	"time"

	"agentboard/internal/model"
)

type AgentStatus struct {
	Status     string     `json:"status"`
	Subagents  []string   `json:"subagents"`
	ActiveRuns int        `json:"active_runs"`
	LastRunAt  *time.Time `json:"last_run_at"`
}

// AgentService projects agent activity from the run table. It holds no state
// of its own.
type AgentService struct {
	store RunStore
}

func NewAgentService(store RunStore) *AgentService {
	return &AgentService{store: store}
}

// Status reports "active" when any run is currently running, "idle"
// otherwise. Subagents are derived from the models of active runs, one
// "chat:<model>" entry per distinct model, sorted.
func (s *AgentService) Status(ctx context.Context) (*AgentStatus, error) {
	active, err := s.store.ListRunsByStatus(ctx, model.RunRunning)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	subagents := []string{}
	for _, run := range active {
		name := "chat:unknown-model"
		if run.Model != "" {
			name = "chat:" + run.Model
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		subagents = append(subagents, name)
	}
	sort.Strings(subagents)

	status := &AgentStatus{
		Status:     "idle",
		Subagents:  subagents,
		ActiveRuns: len(active),
	}
	if len(active) > 0 {
		status.Status = "active"
	}

	latest, err := s.store.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		t := latest.CreatedAt
		status.LastRunAt = &t
	}
	return status, nil
}
