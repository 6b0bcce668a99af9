package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/refinery/internal/models"
	"github.com/desertthunder/refinery/internal/repositories"
	"github.com/desertthunder/refinery/internal/services"
	"github.com/desertthunder/refinery/internal/shared"
)

// Prompter supplies one line of user input for a labeled question.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Phase identifies which pipeline step produced a removal.
type Phase int

const (
	PhaseAuto Phase = iota
	PhaseManual
	PhaseYear
)

func (p Phase) String() string {
	switch p {
	case PhaseAuto:
		return "auto_duplicates"
	case PhaseManual:
		return "manual_review"
	case PhaseYear:
		return "year_filter"
	default:
		return ""
	}
}

// StepResult accumulates per-phase counts for the run summary.
type StepResult struct {
	Reviewed int // groups or tracks the user was shown
	Removed  int // playlist slots (or tracks, for the year phase) removed
	Kept     int // identifiers added to the keep cache
}

// RunResult summarizes a full refinement run.
type RunResult struct {
	Playlist  *models.Playlist
	SessionID string

	Auto   StepResult
	Manual StepResult
	Year   StepResult

	TotalRemoved int
}

// Options control which pipeline steps run and how prompts behave.
type Options struct {
	CutoffYear     int
	SkipDuplicates bool
	SkipYear       bool
	AssumeYes      bool // answer batch confirmations affirmatively
}

// RefineEngine drives the duplicate review and year filter pipeline against
// one playlist. Construct with NewRefineEngine; zero value is not usable.
type RefineEngine struct {
	service  services.Service
	store    *repositories.KeepStore
	audit    *repositories.RemovalLog
	prompter Prompter
	out      io.Writer
	logger   *log.Logger

	sessionID  string
	generation int
}

// NewRefineEngine creates a RefineEngine. The audit log may be nil, in which
// case removals are not recorded locally.
func NewRefineEngine(service services.Service, store *repositories.KeepStore, audit *repositories.RemovalLog, prompter Prompter, out io.Writer, logger *log.Logger) *RefineEngine {
	return &RefineEngine{
		service:   service,
		store:     store,
		audit:     audit,
		prompter:  prompter,
		out:       out,
		logger:    logger,
		sessionID: shared.GenerateID(),
	}
}

// Run executes the full pipeline against the given playlist.
//
// Network or service failures during fetches and commits are surfaced as
// errors; a failed keep-cache save is logged and absorbed.
func (e *RefineEngine) Run(ctx context.Context, playlistID string, opts Options) (*RunResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: playlist service not initialized", shared.ErrServiceUnavailable)
	}

	playlist, err := e.service.Playlist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaylistNotFound, err)
	}

	result := &RunResult{Playlist: playlist, SessionID: e.sessionID}

	e.writef("Refining %q (%d tracks)\n", playlist.Name, playlist.TrackCount)

	snap, err := e.fetch(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !opts.SkipDuplicates {
		snap, err = e.duplicatePass(ctx, snap, opts, result)
		if err != nil {
			return result, err
		}
	}

	if !opts.SkipYear {
		if err := e.yearPass(ctx, snap, opts, result); err != nil {
			return result, err
		}
	}

	if err := e.store.Save(); err != nil {
		e.logger.Warn("failed to persist keep decisions", "error", err)
		e.writef("Warning: keep decisions were not saved: %v\n", err)
	}

	result.TotalRemoved = result.Auto.Removed + result.Manual.Removed + result.Year.Removed
	e.writef("Done. Removed %d, keep cache holds %d tracks.\n", result.TotalRemoved, e.store.Size())
	return result, nil
}

// duplicatePass runs the automatic selector and the manual resolver, with a
// refetch after every committed batch so positions stay aligned with the
// playlist.
func (e *RefineEngine) duplicatePass(ctx context.Context, snap *models.Snapshot, opts Options, result *RunResult) (*models.Snapshot, error) {
	reqs, keeps, err := e.autoStep(snap, &result.Auto)
	if err != nil {
		return nil, err
	}

	snap, err = e.commitAndRefetch(ctx, snap, PhaseAuto, reqs, keeps, &result.Auto)
	if err != nil {
		return nil, err
	}

	reqs, keeps, err = e.manualStep(snap, &result.Manual)
	if err != nil {
		return nil, err
	}

	if len(reqs) > 0 && !opts.AssumeYes {
		ok, err := e.confirm(fmt.Sprintf("Remove %d playlist entries? [y/N]", len(reqs)))
		if err != nil {
			return nil, err
		}
		if !ok {
			e.writef("No tracks were removed.\n")
			return snap, nil
		}
	}

	return e.commitAndRefetch(ctx, snap, PhaseManual, reqs, keeps, &result.Manual)
}

// yearPass reviews tracks released after the cutoff year and removes the
// condemned ones in a single identifier-addressed batch.
func (e *RefineEngine) yearPass(ctx context.Context, snap *models.Snapshot, opts Options, result *RunResult) error {
	ids, keeps, err := e.yearStep(snap, opts.CutoffYear, &result.Year)
	if err != nil {
		return err
	}

	ids = services.DedupeIDs(ids)
	if len(ids) == 0 {
		e.addKeeps(keeps, &result.Year)
		return nil
	}

	if !opts.AssumeYes {
		ok, err := e.confirm(fmt.Sprintf("Remove %d tracks released after %d? [y/N]", len(ids), opts.CutoffYear))
		if err != nil {
			return err
		}
		if !ok {
			e.writef("No tracks were removed.\n")
			return nil
		}
	}

	if err := e.service.RemoveTracks(ctx, snap.PlaylistID, ids); err != nil {
		e.writef("Removal failed, no tracks were removed: %v\n", err)
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	result.Year.Removed += len(ids)
	e.addKeeps(keeps, &result.Year)
	e.recordTracks(snap.PlaylistID, ids)
	e.writef("Removed %d tracks.\n", len(ids))
	return nil
}

// fetch pulls a fresh snapshot and advances the generation counter.
func (e *RefineEngine) fetch(ctx context.Context, playlistID string) (*models.Snapshot, error) {
	entries, err := e.service.PlaylistEntries(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch playlist entries: %v", shared.ErrAPIRequest, err)
	}

	e.generation++
	return &models.Snapshot{
		PlaylistID: playlistID,
		Generation: e.generation,
		Entries:    entries,
	}, nil
}

// commitAndRefetch submits position-addressed removals computed from snap.
// On success the keep decisions are recorded and a fresh snapshot is
// returned; an empty request list leaves the snapshot untouched.
//
// A commit may fail after some chunks were applied, so the snapshot is
// refetched even on failure before the error is surfaced.
func (e *RefineEngine) commitAndRefetch(ctx context.Context, snap *models.Snapshot, phase Phase, reqs []models.RemovalRequest, keeps []string, step *StepResult) (*models.Snapshot, error) {
	if len(reqs) == 0 {
		e.addKeeps(keeps, step)
		return snap, nil
	}

	for _, req := range reqs {
		if req.Generation != snap.Generation {
			return nil, fmt.Errorf("%w: request generation %d, snapshot generation %d", shared.ErrStaleSnapshot, req.Generation, snap.Generation)
		}
	}

	removals := services.GroupRemovals(reqs)
	if err := e.service.RemoveOccurrences(ctx, snap.PlaylistID, removals); err != nil {
		e.writef("Removal failed: %v\n", err)
		if _, ferr := e.fetch(ctx, snap.PlaylistID); ferr != nil {
			e.logger.Warn("refetch after failed removal", "error", ferr)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	step.Removed += len(reqs)
	e.addKeeps(keeps, step)
	e.recordOccurrences(snap.PlaylistID, phase, reqs)
	e.writef("Removed %d playlist entries.\n", len(reqs))

	return e.fetch(ctx, snap.PlaylistID)
}

func (e *RefineEngine) addKeeps(ids []string, step *StepResult) {
	for _, id := range ids {
		if !e.store.Contains(id) {
			step.Kept++
		}
		e.store.Add(id)
	}
}

func (e *RefineEngine) recordOccurrences(playlistID string, phase Phase, reqs []models.RemovalRequest) {
	if e.audit == nil {
		return
	}
	if err := e.audit.RecordOccurrences(e.sessionID, playlistID, phase.String(), reqs); err != nil {
		e.logger.Warn("failed to record removals", "phase", phase.String(), "error", err)
	}
}

func (e *RefineEngine) recordTracks(playlistID string, ids []string) {
	if e.audit == nil {
		return
	}
	if err := e.audit.RecordTracks(e.sessionID, playlistID, PhaseYear.String(), ids); err != nil {
		e.logger.Warn("failed to record removals", "phase", PhaseYear.String(), "error", err)
	}
}

func (e *RefineEngine) confirm(label string) (bool, error) {
	resp, err := e.prompter.Prompt(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(resp), "y"), nil
}

func (e *RefineEngine) writef(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}
