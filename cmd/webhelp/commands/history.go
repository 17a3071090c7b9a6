package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/webhelp/internal/eventstore"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Since time.Duration `default:"168h" help:"Show builds started within this duration"`
	Limit int           `default:"20" help:"Maximum number of builds to list"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if cfg.History.Database == "" {
		return errors.ConfigError("build history is disabled: set history.database").Build()
	}
	store, err := eventstore.NewSQLiteStore(cfg.Resolve(cfg.History.Database))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	events, err := store.GetRange(context.Background(), now.Add(-h.Since), now)
	if err != nil {
		return err
	}
	return PrintHistory(g, eventstore.Summarize(events), h.Limit)
}

// PrintHistory writes one row per build, newest first.
func PrintHistory(g *Global, builds []*eventstore.BuildSummary, limit int) error {
	tw := tabwriter.NewWriter(g.stdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tSTATUS\tSTARTED\tDURATION\tPAGES\tDETAIL")
	for i, b := range builds {
		if limit > 0 && i >= limit {
			break
		}
		detail := b.SkipReason
		if b.ErrorStage != "" {
			detail = b.ErrorStage + ": " + b.ErrorDetail
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			shortID(b.BuildID), b.Status, b.StartedAt.Format(time.DateTime), b.Duration.Truncate(time.Millisecond), b.Pages, detail)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
