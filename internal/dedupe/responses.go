package dedupe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/refinery/internal/shared"
)

// AutoAction is the user's answer to the automatic cleanup suggestion.
type AutoAction int

const (
	AutoSkip    AutoAction = iota // leave everything for manual review
	AutoApply                     // commit every candidate
	AutoExclude                   // drop some rows first, then commit
)

// ParseAutoAction interprets the apply/skip/exclude prompt. Empty input means
// skip, matching the original behavior. The second return value is false for
// unrecognized input, which callers must answer with a reprompt.
func ParseAutoAction(s string) (AutoAction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y":
		return AutoApply, true
	case "n", "":
		return AutoSkip, true
	case "e":
		return AutoExclude, true
	default:
		return AutoSkip, false
	}
}

// ParseRowSet parses a comma-separated list of 1-based row numbers against a
// list of n rows. Empty input yields an empty set. Any number outside
// [1, n] fails the whole input.
func ParseRowSet(s string, n int) (map[int]bool, error) {
	set := make(map[int]bool)

	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return set, nil
	}

	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", shared.ErrInvalidInput, part)
		}
		if num < 1 || num > n {
			return nil, fmt.Errorf("%w: %d is out of range 1-%d", shared.ErrInvalidInput, num, n)
		}
		set[num] = true
	}

	return set, nil
}

// GroupDecisionKind enumerates the outcomes of a manual group prompt.
type GroupDecisionKind int

const (
	GroupKeepAll   GroupDecisionKind = iota // keep every entry in the group
	GroupKeepSet                            // keep listed entries, remove the rest
	GroupRemoveSet                          // remove listed entries, keep the rest
	GroupQuit                               // stop reviewing, commit what is accumulated
)

// GroupDecision is the typed result of parsing a manual review reply.
type GroupDecision struct {
	Kind    GroupDecisionKind
	Indices map[int]bool
}

// ParseGroupDecision interprets a manual review reply for a group of
// entryCount entries:
//
//	""      keep all
//	"1,3"   keep entries 1 and 3, remove the rest
//	"-2"    remove entry 2, keep the rest
//	"q"     quit the review
//
// Out-of-range or non-numeric indices return an error so the caller can
// reprompt without touching group state.
func ParseGroupDecision(s string, entryCount int) (GroupDecision, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if s == "q" {
		return GroupDecision{Kind: GroupQuit}, nil
	}
	if s == "" {
		return GroupDecision{Kind: GroupKeepAll}, nil
	}

	kind := GroupKeepSet
	if strings.HasPrefix(s, "-") {
		kind = GroupRemoveSet
		s = strings.TrimSpace(s[1:])
	}

	set, err := ParseRowSet(s, entryCount)
	if err != nil {
		return GroupDecision{}, err
	}

	// "-" or "," alone selects nothing, which degrades to keeping everything.
	if len(set) == 0 {
		return GroupDecision{Kind: GroupKeepAll}, nil
	}

	return GroupDecision{Kind: kind, Indices: set}, nil
}

// YearChoice is the user's per-track answer during year review.
type YearChoice int

const (
	YearKeep   YearChoice = iota // keep the track and remember the decision
	YearDelete                   // add the track to the removal batch
	YearQuit                     // stop reviewing, chosen deletions still apply
)

// ParseYearChoice interprets the delete/keep/quit prompt. Empty input keeps
// the track. The second return value is false for unrecognized input.
func ParseYearChoice(s string) (YearChoice, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y":
		return YearDelete, true
	case "n", "":
		return YearKeep, true
	case "q":
		return YearQuit, true
	default:
		return YearKeep, false
	}
}
