// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Courses        []string
	RowSize        int
	ReinforceScale float64
	Window         int
	Study          bool
	Fast           bool
	Hint           bool
	Penalty        time.Duration
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Course      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a completed practice session.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Courses    string
	Study      bool
	Fast       bool
	Pressed    int
	Correct    int
	DurationMs int64
}

// ItemStats stores per-problem stats for a session.
type ItemStats struct {
	Problem      string
	Answer       string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// ItemAggregate aggregates problem stats across sessions.
type ItemAggregate struct {
	Problem      string `db:"problem"`
	Answer       string `db:"answer"`
	Correct      int    `db:"correct"`
	Incorrect    int    `db:"incorrect"`
	LatencySumMs int64  `db:"latency_sum_ms"`
	LatencyCount int64  `db:"latency_count"`
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Courses    string
	Pressed    int
	Correct    int
	DurationMs int64
}
