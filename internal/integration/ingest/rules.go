// Package ingest loads the source exports into the database.
package ingest

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

// Rule is one exclusion rule from a filter file. Every non-control key is a
// field predicate; all predicates must hold for the rule to fire.
type Rule struct {
	Action string
	Reason string
	Fields map[string]interface{}
}

// UnmarshalYAML splits the control keys from the field predicates.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	raw := map[string]interface{}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	r.Fields = make(map[string]interface{})
	for key, val := range raw {
		switch key {
		case "action":
			r.Action, _ = val.(string)
		case "reason":
			r.Reason, _ = val.(string)
		default:
			r.Fields[key] = val
		}
	}
	return nil
}

// RuleSet evaluates exclusion rules against loaded rows.
type RuleSet struct {
	rules []Rule

	// substringFields match case-insensitively on containment instead of
	// exact equality.
	substringFields map[string]bool
}

type ruleFile struct {
	Filters []Rule `yaml:"filters"`
}

// LoadRuleSet reads a YAML filter file. A missing file yields an empty set;
// filtering is optional.
func LoadRuleSet(path string, substringFields ...string) (*RuleSet, error) {
	subs := make(map[string]bool, len(substringFields))
	for _, f := range substringFields {
		subs[f] = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RuleSet{substringFields: subs}, nil
		}
		return nil, fmt.Errorf("failed to read filter rules %s: %w", path, err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domainerror.NewIngestError(
			domainerror.ErrFilterRuleInvalid,
			fmt.Sprintf("failed to parse filter rules %s: %v", path, err),
		)
	}
	return &RuleSet{rules: file.Filters, substringFields: subs}, nil
}

// Evaluate returns the exclusion reason of the first matching EXCLUDE rule.
func (rs *RuleSet) Evaluate(row map[string]string) (string, bool) {
	for _, rule := range rs.rules {
		if rule.Action != "EXCLUDE" {
			continue
		}
		if rs.ruleMatches(rule, row) {
			reason := rule.Reason
			if reason == "" {
				reason = "Excluded by rule"
			}
			return reason, true
		}
	}
	return "", false
}

func (rs *RuleSet) ruleMatches(rule Rule, row map[string]string) bool {
	for key, want := range rule.Fields {
		got, ok := row[key]
		if !ok {
			return false
		}
		got = strings.TrimSpace(got)

		switch v := want.(type) {
		case int:
			if !numericEqual(got, float64(v)) {
				return false
			}
		case float64:
			if !numericEqual(got, v) {
				return false
			}
		case string:
			if rs.substringFields[key] {
				if !strings.Contains(strings.ToLower(got), strings.ToLower(v)) {
					return false
				}
			} else if got != v {
				return false
			}
		default:
			if got != fmt.Sprint(want) {
				return false
			}
		}
	}
	return true
}

func numericEqual(raw string, want float64) bool {
	got, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	return got == want
}
