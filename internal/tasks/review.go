package tasks

import (
	"fmt"

	"github.com/desertthunder/refinery/internal/dedupe"
	"github.com/desertthunder/refinery/internal/formatter"
	"github.com/desertthunder/refinery/internal/models"
)

// autoStep presents duration-close duplicate candidates and collects the
// user's list-level decision: apply everything, skip, or exclude some rows
// first. Excluding every row degrades to a skip.
//
// Returned removals target the candidate entries; keeps name the paired
// bases, recorded only when the caller commits the batch.
func (e *RefineEngine) autoStep(snap *models.Snapshot, step *StepResult) ([]models.RemovalRequest, []string, error) {
	groups := dedupe.Duplicates(dedupe.BuildGroups(snap.Entries))
	candidates := dedupe.AutoCandidates(groups)
	if len(candidates) == 0 {
		e.writef("No automatic duplicate candidates found.\n")
		return nil, nil, nil
	}

	e.writef("Found %d duplicate candidates (duration within %d ms of the kept entry):\n\n", len(candidates), dedupe.DurationThresholdMS)
	for i, c := range candidates {
		e.writef("Candidate %d of %d\n%s\n\n", i+1, len(candidates), formatter.CandidateTable(c))
	}
	step.Reviewed += len(candidates)

	selected, err := e.selectCandidates(candidates)
	if err != nil {
		return nil, nil, err
	}
	if len(selected) == 0 {
		e.writef("Skipping automatic cleanup.\n")
		return nil, nil, nil
	}

	reqs := make([]models.RemovalRequest, 0, len(selected))
	keeps := make([]string, 0, len(selected))
	for _, c := range selected {
		reqs = append(reqs, removalFor(c.Entry, snap.Generation))
		keeps = append(keeps, c.Base.Track.ID)
	}
	return reqs, keeps, nil
}

// selectCandidates runs the apply/skip/exclude prompt loop until it has a
// valid decision. Unrecognized input and invalid row numbers reprompt.
func (e *RefineEngine) selectCandidates(candidates []dedupe.Candidate) ([]dedupe.Candidate, error) {
	for {
		resp, err := e.prompter.Prompt("Remove all candidates? [y=all, N=skip, e=exclude some]")
		if err != nil {
			return nil, err
		}

		action, ok := dedupe.ParseAutoAction(resp)
		if !ok {
			e.writef("Unrecognized answer %q.\n", resp)
			continue
		}

		switch action {
		case dedupe.AutoSkip:
			return nil, nil
		case dedupe.AutoApply:
			return candidates, nil
		case dedupe.AutoExclude:
			excluded, err := e.promptRowSet(len(candidates))
			if err != nil {
				return nil, err
			}
			selected := make([]dedupe.Candidate, 0, len(candidates))
			for i, c := range candidates {
				if !excluded[i+1] {
					selected = append(selected, c)
				}
			}
			return selected, nil
		}
	}
}

func (e *RefineEngine) promptRowSet(n int) (map[int]bool, error) {
	for {
		resp, err := e.prompter.Prompt(fmt.Sprintf("Rows to exclude (1-%d, comma-separated)", n))
		if err != nil {
			return nil, err
		}

		set, perr := dedupe.ParseRowSet(resp, n)
		if perr != nil {
			e.writef("%v\n", perr)
			continue
		}
		return set, nil
	}
}

// manualStep walks the remaining duplicate groups in key order and collects
// per-group keep/remove decisions. A quit reply stops at the current group;
// everything accumulated up to that point is returned for a single commit.
func (e *RefineEngine) manualStep(snap *models.Snapshot, step *StepResult) ([]models.RemovalRequest, []string, error) {
	groups := dedupe.Duplicates(dedupe.BuildGroups(snap.Entries))
	if len(groups) == 0 {
		e.writef("No duplicate groups left to review.\n")
		return nil, nil, nil
	}

	e.writef("%d duplicate groups to review.\n\n", len(groups))

	var reqs []models.RemovalRequest
	var keeps []string

	for i, g := range groups {
		e.writef("Group %d of %d: %s\n%s\n", i+1, len(groups), g.Key.Title, formatter.GroupTable(g))
		step.Reviewed++

		decision, err := e.promptGroup(len(g.Entries))
		if err != nil {
			return nil, nil, err
		}

		if decision.Kind == dedupe.GroupQuit {
			e.writef("Stopping review, committing decisions so far.\n")
			break
		}

		for j, entry := range g.Entries {
			if removeEntry(decision, j+1) {
				reqs = append(reqs, removalFor(entry, snap.Generation))
			} else {
				keeps = append(keeps, entry.Track.ID)
			}
		}
	}

	return reqs, keeps, nil
}

// removeEntry reports whether the 1-based entry index falls on the removal
// side of a group decision.
func removeEntry(d dedupe.GroupDecision, index int) bool {
	switch d.Kind {
	case dedupe.GroupKeepSet:
		return !d.Indices[index]
	case dedupe.GroupRemoveSet:
		return d.Indices[index]
	default:
		return false
	}
}

func (e *RefineEngine) promptGroup(entryCount int) (dedupe.GroupDecision, error) {
	for {
		resp, err := e.prompter.Prompt("Keep which? [Enter=all, 1,3=keep listed, -2=remove listed, q=quit]")
		if err != nil {
			return dedupe.GroupDecision{}, err
		}

		decision, perr := dedupe.ParseGroupDecision(resp, entryCount)
		if perr != nil {
			e.writef("%v\n", perr)
			continue
		}
		return decision, nil
	}
}

// yearStep reviews every track not already in the keep cache against the
// cutoff year. Tracks with a known year at or before the cutoff are kept
// without a prompt; everything else is decided per track. Quit stops the
// review, keeping the deletions chosen so far.
func (e *RefineEngine) yearStep(snap *models.Snapshot, cutoff int, step *StepResult) ([]string, []string, error) {
	e.writef("Reviewing tracks released after %d.\n", cutoff)

	var ids []string
	var keeps []string
	decided := make(map[string]bool)

review:
	for _, entry := range snap.Entries {
		t := entry.Track
		if t == nil || t.ID == "" {
			continue
		}
		if e.store.Contains(t.ID) || decided[t.ID] {
			continue
		}
		if year, ok := t.ReleaseYear(); ok && year <= cutoff {
			continue
		}

		e.writef("%s\n", formatter.TrackLine(entry))
		step.Reviewed++

		for {
			resp, err := e.prompter.Prompt("Delete this track? [y=delete, N=keep, q=stop reviewing]")
			if err != nil {
				return nil, nil, err
			}

			choice, ok := dedupe.ParseYearChoice(resp)
			if !ok {
				e.writef("Unrecognized answer %q.\n", resp)
				continue
			}

			switch choice {
			case dedupe.YearDelete:
				ids = append(ids, t.ID)
			case dedupe.YearKeep:
				keeps = append(keeps, t.ID)
			case dedupe.YearQuit:
				break review
			}
			decided[t.ID] = true
			break
		}
	}

	return ids, keeps, nil
}

func removalFor(entry models.TrackEntry, generation int) models.RemovalRequest {
	return models.RemovalRequest{
		TrackID:    entry.Track.ID,
		URI:        entry.Track.URI,
		Position:   entry.Position,
		Generation: generation,
	}
}
