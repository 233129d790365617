// Package repo provides clickhouse access for assessment stats
package repo

import (
	"context"
	"time"

	"lifering/internal/modkit/repokit"
	"lifering/internal/platform/store"
	"lifering/internal/services/stats/domain"
)

// Repo is the minimal read surface for the dashboard
type Repo interface {
	Decisions(ctx context.Context, in domain.DecisionsInput) ([]domain.DecisionRow, error)
	RiskMix(ctx context.Context, in domain.RiskMixInput) ([]domain.RiskMixRow, error)
}

// NewHybrid constructs a storage binder over the CH event stream
func NewHybrid(ch store.Clickhouse) repokit.Binder[Repo] { return &hybridBinder{ch: ch} }

type hybridBinder struct{ ch store.Clickhouse }

// Bind binds a Queryer to produce a Repo
func (b *hybridBinder) Bind(q repokit.Queryer) Repo { return &hybridStore{pg: q, ch: b.ch} }

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

func parseRange(r domain.TimeRange) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endIncl, err := time.Parse("2006-01-02", r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, endIncl.Add(24 * time.Hour), nil
}

// Decisions buckets outcomes per day over the event stream
func (s *hybridStore) Decisions(ctx context.Context, in domain.DecisionsInput) ([]domain.DecisionRow, error) {
	start, endExcl, err := parseRange(in.Range)
	if err != nil {
		return nil, err
	}
	const sql = `
		SELECT
			formatDateTime(toStartOfDay(event_time), '%Y-%m-%d') AS day,
			decision,
			count() AS cnt
		FROM assessment_events
		WHERE event_time >= ? AND event_time < ?
		  AND (? = '' OR target_type = ?)
		  AND (? = '' OR model_id = ?)
		GROUP BY day, decision
		ORDER BY day ASC, decision ASC
	`
	rs, err := s.ch.Query(ctx, sql,
		start, endExcl,
		in.TargetType, in.TargetType,
		in.ModelID, in.ModelID,
	)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []domain.DecisionRow
	for rs.Next() {
		var row domain.DecisionRow
		var cnt uint64
		if err := rs.Scan(&row.Day, &row.Decision, &cnt); err != nil {
			return nil, err
		}
		row.Count = int64(cnt)
		out = append(out, row)
	}
	return out, rs.Err()
}

// RiskMix aggregates classifier output per risk level
func (s *hybridStore) RiskMix(ctx context.Context, in domain.RiskMixInput) ([]domain.RiskMixRow, error) {
	start, endExcl, err := parseRange(in.Range)
	if err != nil {
		return nil, err
	}
	const sql = `
		SELECT
			risk_level,
			count() AS cnt,
			avg(confidence) AS avg_conf,
			countIf(layer1_hit = 1) AS l1_hits
		FROM assessment_events
		WHERE event_time >= ? AND event_time < ?
		  AND (? = '' OR target_type = ?)
		GROUP BY risk_level
		ORDER BY cnt DESC
	`
	rs, err := s.ch.Query(ctx, sql,
		start, endExcl,
		in.TargetType, in.TargetType,
	)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []domain.RiskMixRow
	for rs.Next() {
		var row domain.RiskMixRow
		var cnt, l1 uint64
		if err := rs.Scan(&row.RiskLevel, &cnt, &row.AvgConfidence, &l1); err != nil {
			return nil, err
		}
		row.Count = int64(cnt)
		row.Layer1Hits = int64(l1)
		out = append(out, row)
	}
	return out, rs.Err()
}
