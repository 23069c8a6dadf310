package stats

import (
	"context"

	"github.com/verte-zerg/rootdrill/internal/model"
	"github.com/verte-zerg/rootdrill/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	ItemAggsAll      []model.ItemAggregate
	ItemAggsWindow   []model.ItemAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	windowIDs := sessionIDs(sessions)
	if cfg.CurveWindow > 0 && len(sessions) > cfg.CurveWindow {
		windowIDs = sessionIDs(sessions[len(sessions)-cfg.CurveWindow:])
	}
	itemAggsAll, err := st.ListItemAggregatesForSessions(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}
	itemAggsWindow, err := st.ListItemAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		ItemAggsAll:      itemAggsAll,
		ItemAggsWindow:   itemAggsWindow,
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}
