// package formatter renders review tables for the terminal and exports
// playlist snapshots to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/desertthunder/refinery/internal/dedupe"
	"github.com/desertthunder/refinery/internal/models"
	"github.com/desertthunder/refinery/internal/shared"
)

const unavailableLabel = "(unavailable)"

func renderTable(headers []string, rows [][]string, rightAligned ...int) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	right := make(map[int]bool, len(rightAligned))
	for _, col := range rightAligned {
		right[col] = true
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if right[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func trackTitle(t *models.Track) string {
	if t == nil {
		return unavailableLabel
	}
	return t.Title
}

func trackArtist(t *models.Track) string {
	if t == nil {
		return ""
	}
	return t.PrimaryArtist()
}

func trackDuration(t *models.Track) string {
	if t == nil {
		return shared.FormatDuration(0)
	}
	return shared.FormatDuration(t.DurationMS)
}

func trackRelease(t *models.Track) string {
	if t == nil || t.ReleaseDate == "" {
		return "?"
	}
	return t.ReleaseDate
}

// CandidateTable renders a duplicate candidate next to the entry it matched,
// one column per entry, so the two versions can be compared field by field.
func CandidateTable(c dedupe.Candidate) string {
	base, dup := c.Base.Track, c.Entry.Track
	rows := [][]string{
		{"Position", strconv.Itoa(c.Base.Position + 1), strconv.Itoa(c.Entry.Position + 1)},
		{"Title", trackTitle(base), trackTitle(dup)},
		{"Artist", trackArtist(base), trackArtist(dup)},
		{"Album", safeAlbum(base), safeAlbum(dup)},
		{"Released", trackRelease(base), trackRelease(dup)},
		{"Duration", trackDuration(base), trackDuration(dup)},
	}
	return renderTable([]string{"", "Keeping", "Candidate"}, rows)
}

func safeAlbum(t *models.Track) string {
	if t == nil {
		return ""
	}
	return t.Album
}

// GroupTable renders every occurrence of a duplicate group as a numbered
// table for manual review. Row numbers are one-based to match the numbers
// the prompt accepts.
func GroupTable(g dedupe.Group) string {
	rows := make([][]string, 0, len(g.Entries))
	for i, entry := range g.Entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(entry.Position + 1),
			trackTitle(entry.Track),
			trackArtist(entry.Track),
			safeAlbum(entry.Track),
			trackRelease(entry.Track),
			trackDuration(entry.Track),
		})
	}
	return renderTable([]string{"#", "Pos", "Title", "Artist", "Album", "Released", "Duration"}, rows, 0, 1, 6)
}

// PlaylistTable renders a playlist listing.
func PlaylistTable(playlists []models.Playlist) string {
	rows := make([][]string, 0, len(playlists))
	for i, p := range playlists {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			p.OwnerName,
			strconv.Itoa(p.TrackCount),
			shared.VisibilityString(p.Public),
			p.ID,
		})
	}
	return renderTable([]string{"#", "Name", "Owner", "Tracks", "Visibility", "ID"}, rows, 0, 3)
}

// TrackLine formats one entry the way the review prompts reference it.
func TrackLine(entry models.TrackEntry) string {
	t := entry.Track
	if t == nil {
		return fmt.Sprintf("%d. %s", entry.Position+1, unavailableLabel)
	}
	return fmt.Sprintf("%d. %s - %s [%s] (%s)", entry.Position+1, t.PrimaryArtist(), t.Title, trackDuration(t), trackRelease(t))
}

// ExportToCSV converts a snapshot to CSV with columns: Position, ID, Title, Artist, Album, Released, Duration
func ExportToCSV(entries []models.TrackEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Title", "Artist", "Album", "Released", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{strconv.Itoa(entry.Position + 1), "", unavailableLabel, "", "", "", "0"}
		if t := entry.Track; t != nil {
			record = []string{
				strconv.Itoa(entry.Position + 1),
				t.ID,
				t.Title,
				t.PrimaryArtist(),
				t.Album,
				t.ReleaseDate,
				strconv.Itoa(t.DurationMS),
			}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist and its entries to Markdown format
func ExportToMarkdown(playlist *models.Playlist, entries []models.TrackEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))

	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(entries)))
	buf.WriteString(fmt.Sprintf("**Visibility**: %s\n\n", shared.VisibilityString(playlist.Public)))

	buf.WriteString("## Tracks\n\n")
	for _, entry := range entries {
		buf.WriteString(fmt.Sprintf("%s\n", TrackLine(entry)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist and its entries to plain text format
func ExportToText(playlist *models.Playlist, entries []models.TrackEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(entries)))

	for _, entry := range entries {
		t := entry.Track
		if t == nil {
			buf.WriteString(fmt.Sprintf("%d. %s\n", entry.Position+1, unavailableLabel))
			continue
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", entry.Position+1, t.PrimaryArtist(), t.Title))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without tracks)
func ToMetadataJSON(playlist models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(playlist, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a snapshot to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(playlist *models.Playlist, entries []models.TrackEntry, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = playlist.ID
	}

	csvData, err := ExportToCSV(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(*playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a snapshot to Markdown format.
//
// Defaults to {playlist.ID}.md as the filename.
func WriteMarkdownExport(playlist *models.Playlist, entries []models.TrackEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s.md", playlist.ID)
	}

	mdData, err := ExportToMarkdown(playlist, entries)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a snapshot to plain text format.
//
// Defaults to {playlist.ID}_tracks.txt as the filename.
func WriteTextExport(playlist *models.Playlist, entries []models.TrackEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_tracks.txt", playlist.ID)
	}

	textData, err := ExportToText(playlist, entries)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
