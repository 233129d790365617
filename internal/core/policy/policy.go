// Package policy implements the decision composer: the pure function that
// turns layer signals plus operator-tuned thresholds into one moderation
// decision. The severity mapping is data so operators can retune it without
// a code change
package policy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decision is the moderation outcome for a comment
type Decision string

const (
	// DecisionApproved publishes the comment
	DecisionApproved Decision = "APPROVED"
	// DecisionHeld parks the comment for human review
	DecisionHeld Decision = "HELD"
	// DecisionRejected blocks the comment outright
	DecisionRejected Decision = "REJECTED"
)

// Valid reports whether d is a known decision
func (d Decision) Valid() bool {
	switch d {
	case DecisionApproved, DecisionHeld, DecisionRejected:
		return true
	}
	return false
}

// RiskLevel is the classifier's ordinal severity scale
type RiskLevel string

const (
	// RiskUnknown marks a classifier failure (timeout, error, bad schema)
	RiskUnknown RiskLevel = "unknown"
	// RiskLow is ordinary content
	RiskLow RiskLevel = "low"
	// RiskMedium is ambiguous or mildly concerning content
	RiskMedium RiskLevel = "medium"
	// RiskHigh is likely crisis content
	RiskHigh RiskLevel = "high"
	// RiskCritical is explicit crisis content
	RiskCritical RiskLevel = "critical"
)

// ordinals for rule comparison; unknown deliberately sits below low so a
// MinLevel rule never silently captures classifier failures (those are
// handled by the explicit fail-closed branch in Compose)
var levelOrd = map[RiskLevel]int{
	RiskUnknown:  0,
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// ParseRiskLevel normalizes a wire value into a RiskLevel, unknown on miss
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	case RiskCritical:
		return RiskCritical
	}
	return RiskUnknown
}

// Ord returns the ordinal position of l (unknown = 0)
func (l RiskLevel) Ord() int { return levelOrd[l] }

// Rule maps a severity band to a decision. Rules are checked most severe
// first; the first rule whose MinLevel and confidence floor both pass wins.
// MinConfidence is optional: a rule that leaves it unset inherits the
// operator riskThreshold at evaluation time, so retuning the threshold
// moves every unpinned rule with it
type Rule struct {
	MinLevel      RiskLevel `json:"min_level"`
	MinConfidence *float64  `json:"min_confidence,omitempty"`
	Decision      Decision  `json:"decision"`
}

// floor resolves the rule's effective confidence floor
func (r Rule) floor(threshold float64) float64 {
	if r.MinConfidence != nil {
		return *r.MinConfidence
	}
	return threshold
}

// Policy is the full data-driven decision table
type Policy struct {
	Rules []Rule `json:"rules"`
}

// Default returns the shipped policy: medium and high severity hold at the
// operator threshold (both rules leave min_confidence unset so they track
// it); rejection is not enabled until operators configure a hard-stop tier
// themselves
func Default() Policy {
	return Policy{Rules: []Rule{
		{MinLevel: RiskHigh, Decision: DecisionHeld},
		{MinLevel: RiskMedium, Decision: DecisionHeld},
	}}
}

// Parse decodes and validates a policy JSON document
func Parse(raw []byte) (Policy, error) {
	var p Policy
	if err := json.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("policy: parse: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate rejects rules with unknown levels, out-of-range confidences,
// or decisions outside the allowed set
func (p Policy) Validate() error {
	for i, r := range p.Rules {
		if _, ok := levelOrd[r.MinLevel]; !ok || r.MinLevel == RiskUnknown {
			return fmt.Errorf("policy: rule %d: bad min_level %q", i, r.MinLevel)
		}
		if r.MinConfidence != nil && (*r.MinConfidence < 0 || *r.MinConfidence > 1) {
			return fmt.Errorf("policy: rule %d: min_confidence %v out of [0,1]", i, *r.MinConfidence)
		}
		if !r.Decision.Valid() || r.Decision == DecisionApproved {
			return fmt.Errorf("policy: rule %d: bad decision %q", i, r.Decision)
		}
	}
	return nil
}

// Compose combines the layer signals into a decision under the snapshot's
// operator threshold.
// A blocklist hit holds unconditionally. A classifier failure (unknown
// level) holds: this engine fails closed, see DESIGN.md. Otherwise the
// most severe matching rule wins; no rule matching means the comment is
// approved. Rules without a pinned min_confidence use threshold as their
// floor, so an admin retuning riskThreshold changes decisions from the
// next snapshot on
func Compose(layer1Hit bool, level RiskLevel, confidence, threshold float64, p Policy) Decision {
	if layer1Hit {
		return DecisionHeld
	}
	if level == RiskUnknown {
		return DecisionHeld
	}
	best := Rule{}
	found := false
	for _, r := range p.Rules {
		if level.Ord() >= r.MinLevel.Ord() && confidence >= r.floor(threshold) {
			if !found || r.MinLevel.Ord() > best.MinLevel.Ord() {
				best = r
				found = true
			}
		}
	}
	if found {
		return best.Decision
	}
	return DecisionApproved
}
