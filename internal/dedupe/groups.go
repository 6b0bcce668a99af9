// package dedupe implements duplicate grouping and the decision logic behind
// the review loops. Everything here is pure: console I/O and service calls
// stay in the tasks layer so the decision rules can be tested directly.
package dedupe

import (
	"sort"

	"github.com/desertthunder/refinery/internal/models"
	"github.com/desertthunder/refinery/internal/normalize"
)

// DurationThresholdMS is the maximum duration difference between an entry and
// its group's base entry for the entry to qualify as an automatic duplicate.
const DurationThresholdMS = 3000

// Group is a set of track entries sharing a normalized (title, artist) key,
// ordered by playlist position ascending.
type Group struct {
	Key     normalize.Key
	Entries []models.TrackEntry
}

// Base returns the lowest-position entry, treated as canonical by the
// automatic selector. Only valid for non-empty groups.
func (g Group) Base() models.TrackEntry {
	return g.Entries[0]
}

// BuildGroups groups snapshot entries by normalized (title, primary artist).
// Entries without an underlying track (unavailable or local items) are
// skipped entirely. Groups are returned sorted by key, entries within each
// group sorted by position.
func BuildGroups(entries []models.TrackEntry) []Group {
	byKey := make(map[normalize.Key][]models.TrackEntry)

	for _, entry := range entries {
		if entry.Track == nil {
			continue
		}
		key := normalize.NewKey(entry.Track.Title, entry.Track.PrimaryArtist())
		byKey[key] = append(byKey[key], entry)
	}

	groups := make([]Group, 0, len(byKey))
	for key, members := range byKey {
		sort.Slice(members, func(i, j int) bool {
			return members[i].Position < members[j].Position
		})
		groups = append(groups, Group{Key: key, Entries: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key.String() < groups[j].Key.String()
	})

	return groups
}

// Duplicates returns the candidate duplicate groups: those with at least two entries.
func Duplicates(groups []Group) []Group {
	var dups []Group
	for _, g := range groups {
		if len(g.Entries) >= 2 {
			dups = append(dups, g)
		}
	}
	return dups
}

// Candidate pairs an entry selected for automatic removal with the base entry
// that would be kept in its place.
type Candidate struct {
	Entry models.TrackEntry
	Base  models.TrackEntry
}

// AutoCandidates selects duration-close duplicates across all candidate
// groups, in group order. A group whose base has no known duration is
// excluded entirely and falls through to manual review. The base entry is
// never a candidate against itself.
func AutoCandidates(groups []Group) []Candidate {
	var candidates []Candidate

	for _, g := range Duplicates(groups) {
		base := g.Base()
		if !base.Track.HasDuration() {
			continue
		}

		for _, entry := range g.Entries[1:] {
			if !entry.Track.HasDuration() {
				continue
			}
			diff := entry.Track.DurationMS - base.Track.DurationMS
			if diff < 0 {
				diff = -diff
			}
			if diff <= DurationThresholdMS {
				candidates = append(candidates, Candidate{Entry: entry, Base: base})
			}
		}
	}

	return candidates
}
