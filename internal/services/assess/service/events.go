package service

import (
	"context"
	"time"

	"lifering/internal/platform/logger"
	"lifering/internal/services/assess/domain"
)

// eventsTable carries the full INSERT target for the CH batch writer
const eventsTable = `assessment_events (
	event_time, assessment_id, comment_id, target_type,
	decision, risk_level, confidence, layer1_hit, model_id, latency_ms
)`

// emitEvent writes one analytics row; failures never affect the outcome
func (s *Svc) emitEvent(ctx context.Context, a domain.Assessment, id string) {
	if s.events == nil {
		return
	}
	row := []any{
		time.Now().UTC(), id, a.CommentID, a.TargetType,
		string(a.Decision), string(a.RiskLevel), a.Confidence,
		uint8(boolToInt(a.Layer1Hit != "")), a.ModelID, int32(a.LatencyMs),
	}
	if err := s.events.Insert(ctx, eventsTable, [][]any{row}); err != nil {
		logger.C(ctx).Warn().Err(err).Str("assessment_id", id).Msg("assessment event write failed")
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
