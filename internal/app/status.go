package app

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/ui/output"
	"go.trai.ch/sob/internal/ui/style"
	"go.trai.ch/zerr"
)

// Status prints the last recorded build of the requested targets, or of every
// target when none is given.
func (a *App) Status(_ context.Context, targetNames []string) error {
	project, err := a.load()
	if err != nil {
		return err
	}

	ids := domain.NewIdentities(targetNames)
	if len(ids) == 0 {
		for t := range project.Graph.Targets() {
			ids = append(ids, t.Name)
		}
	}

	records := make([]*domain.BuildRecord, len(ids))
	for i, id := range ids {
		if _, ok := project.Graph.GetTarget(id); !ok {
			return zerr.With(zerr.Wrap(domain.ErrTargetNotFound, "unknown target"), "target", id.String())
		}
		record, err := a.store.Get(project.Root, id.String())
		if err != nil {
			return err
		}
		records[i] = record
	}

	renderer := lipgloss.NewRenderer(a.stdout)
	renderer.SetColorProfile(output.Profile(a.stdout))
	header := renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := renderer.NewStyle().Padding(0, 1)

	statuses := make([]string, len(ids))
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i], statuses[i] = statusRow(id, records[i])
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(renderer.NewStyle().Foreground(style.Muted)).
		Headers("TARGET", "STATUS", "EXIT", "DURATION", "LAST BUILT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 1 && row >= 0 && row < len(statuses) {
				_, colour := style.Status(statuses[row])
				return cell.Foreground(colour)
			}
			return cell
		})

	a.printf("%s\n", t.Render())
	return nil
}

func statusRow(id domain.Identity, record *domain.BuildRecord) ([]string, string) {
	if record == nil {
		icon, _ := style.Status("")
		return []string{id.String(), icon + " never built", "-", "-", "-"}, ""
	}
	icon, _ := style.Status(record.Status)
	return []string{
		id.String(),
		icon + " " + record.Status,
		strconv.Itoa(record.ExitCode),
		record.Duration.Round(time.Millisecond).String(),
		record.Timestamp.Local().Format(time.DateTime),
	}, record.Status
}
