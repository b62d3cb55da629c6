package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/vmsouza/musicctl/internal/formatter"
	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/shared"
)

// recordFromFlags builds a record from the shared add/edit flags. The
// launch date stays masked; the catalog client validates and unmasks it.
func recordFromFlags(cmd *cli.Command) models.Music {
	record := models.Music{
		Title:      cmd.String("title"),
		Artist:     cmd.String("artist"),
		LaunchDate: cmd.String("launch-date"),
		Duration:   cmd.String("duration"),
		Feat:       cmd.Bool("feat"),
	}
	if views := cmd.Int("views"); views > 0 {
		v := int64(views)
		record.ViewsNumber = &v
	}
	return record
}

func (r *Runner) writePage(page models.Page, title string, useJSON, pretty bool) error {
	if useJSON {
		return r.writeJSON(map[string]any{
			"content":       page.Items,
			"totalElements": page.TotalElements,
			"page":          page.Index,
		}, pretty)
	}

	r.writePlainHeader(title)
	for i, m := range page.Items {
		id := "-"
		if m.ID != nil {
			id = strconv.FormatInt(*m.ID, 10)
		}
		// rows are numbered within the page; the id only serves the
		// edit/delete/recover flags
		r.writePlain("%d. %s - %s (id %s)\n", i+1, m.Title, m.Artist, id)
		r.writePlain("   Launched: %s", formatter.FormatLaunchDate(m.LaunchDate))
		if m.Duration != "" {
			r.writePlain("  Duration: %s", formatter.FormatDuration(m.Duration))
		}
		if m.ViewsNumber != nil {
			r.writePlain("  Views: %s", formatter.FormatViews(*m.ViewsNumber))
		}
		if m.Feat {
			r.writePlain("  (feat)")
		}
		r.writePlain("\n")
	}

	pages := (page.TotalElements + models.PageSize - 1) / models.PageSize
	if pages == 0 {
		pages = 1
	}
	r.writePlain("Page %d of %d, %d total\n", page.Index+1, pages, page.TotalElements)
	return nil
}

// MusicsList prints one page of the active catalog.
func (r *Runner) MusicsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	page, err := r.catalog.List(ctx, cmd.Int("page"))
	if err != nil {
		return err
	}

	return r.writePage(page, "Musics", cmd.Bool("json"), cmd.Bool("pretty"))
}

// MusicsAdd creates a record from flags.
func (r *Runner) MusicsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	message, err := r.catalog.Save(ctx, recordFromFlags(cmd))
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", message)
}

// MusicsEdit updates a record from flags.
func (r *Runner) MusicsEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	record := recordFromFlags(cmd)
	id := int64(cmd.Int("id"))
	record.ID = &id

	message, err := r.catalog.Edit(ctx, record)
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", message)
}

// MusicsDelete soft-deletes a record after confirmation.
func (r *Runner) MusicsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	id := int64(cmd.Int("id"))
	confirm := r.confirm
	if cmd.Bool("yes") {
		confirm = nil
	}

	if err := r.catalog.Delete(ctx, id, confirm); err != nil {
		if errors.Is(err, shared.ErrNotConfirmed) {
			return r.writePlain("Aborted\n")
		}
		return err
	}

	return r.writePlain("✓ Music %d deleted\n", id)
}

// MusicsExport writes the full catalog to a CSV file.
func (r *Runner) MusicsExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	records, err := r.collectAll(ctx, r.catalog.List)
	if err != nil {
		return err
	}

	path, err := formatter.WriteCSVExport(records, cmd.String("output"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Exported %d musics to %s\n", len(records), path)
}

// MusicsDeletedList prints one page of the deleted records.
func (r *Runner) MusicsDeletedList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	page, err := r.catalog.ListDeleted(ctx, cmd.Int("page"))
	if err != nil {
		return err
	}

	return r.writePage(page, "Deleted Musics", cmd.Bool("json"), cmd.Bool("pretty"))
}

// MusicsDeletedCount prints the number of deleted records.
func (r *Runner) MusicsDeletedCount(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	count, err := r.catalog.CountDeleted(ctx)
	if err != nil {
		return err
	}

	return r.writePlain("%d deleted musics\n", count)
}

// MusicsRecover restores deleted records by ID. The deleted listing is
// scanned for the full records, since recovery submits records rather
// than IDs.
func (r *Runner) MusicsRecover(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	wanted := map[int64]bool{}
	for _, raw := range strings.Split(cmd.String("ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid id %q", shared.ErrInvalidArgument, raw)
		}
		wanted[id] = true
	}
	if len(wanted) == 0 {
		return shared.ErrEmptySelection
	}

	deleted, err := r.collectAll(ctx, r.catalog.ListDeleted)
	if err != nil {
		return err
	}

	selection := models.NewSelection()
	for _, m := range deleted {
		if m.ID != nil && wanted[*m.ID] {
			selection.Toggle(m)
			delete(wanted, *m.ID)
		}
	}
	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for id := range wanted {
			missing = append(missing, strconv.FormatInt(id, 10))
		}
		return fmt.Errorf("%w: not found among deleted musics: %s", shared.ErrInvalidArgument, strings.Join(missing, ", "))
	}

	confirm := r.confirm
	if cmd.Bool("yes") {
		confirm = nil
	}

	message, err := r.catalog.Recover(ctx, selection, confirm)
	if err != nil {
		if errors.Is(err, shared.ErrNotConfirmed) {
			return r.writePlain("Aborted\n")
		}
		return err
	}

	return r.writePlain("✓ %s\n", message)
}

// collectAll walks a paginated listing until every record is fetched.
func (r *Runner) collectAll(ctx context.Context, list func(context.Context, int) (models.Page, error)) ([]models.Music, error) {
	var records []models.Music
	for page := 0; ; page++ {
		result, err := list(ctx, page)
		if err != nil {
			return nil, err
		}
		records = append(records, result.Items...)
		if len(records) >= result.TotalElements || len(result.Items) == 0 {
			return records, nil
		}
	}
}
