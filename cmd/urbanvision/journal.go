package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"urbanvision-ao/urbanvision/pkg/cli"
	"urbanvision-ao/urbanvision/pkg/config"
	"urbanvision-ao/urbanvision/pkg/journal"
)

var journalFlags struct {
	operation string
	since     string
	limit     int
	format    string

	retentionDays int
	maxRecords    int64
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect and maintain the request journal",
	Long: `Inspect and maintain the request journal configured in the journal
section. The journal holds one record per generation call with its operation,
area, model, outcome, latency and token usage. Prompts and answers are never
stored.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal records, newest first",
	Long: `List journal records, newest first.

Examples:
  # Last 20 records
  urbanvision journal list

  # Analyses from the last 24 hours as JSON
  urbanvision journal list --operation analyze --since 24h --format json

  # Everything since a date
  urbanvision journal list --since 2026-01-01T00:00:00Z --limit 0`,
	RunE: listJournal,
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy once",
	Long: `Delete records older than the retention period and trim the journal
to its maximum size, as the scheduled pruning does.

Examples:
  # Use the configured retention
  urbanvision journal prune

  # Keep only the last 7 days
  urbanvision journal prune --retention-days 7`,
	RunE: pruneJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd, journalPruneCmd)

	journalListCmd.Flags().StringVar(&journalFlags.operation, "operation", "", "only records of this operation (chat, analyze, predict, recommend)")
	journalListCmd.Flags().StringVar(&journalFlags.since, "since", "", "only records newer than a duration (24h) or an RFC3339 time")
	journalListCmd.Flags().IntVar(&journalFlags.limit, "limit", 20, "maximum number of records (0 for all)")
	journalListCmd.Flags().StringVar(&journalFlags.format, "format", "text", "output format: text, json")

	journalPruneCmd.Flags().IntVar(&journalFlags.retentionDays, "retention-days", -1, "override journal.retention_days")
	journalPruneCmd.Flags().Int64Var(&journalFlags.maxRecords, "max-records", -1, "override journal.max_records")
}

// recordTable renders journal records as columns.
type recordTable []*journal.Record

func (t recordTable) Header() []string {
	return []string{"CREATED", "OPERATION", "AREA", "STATUS", "LATENCY", "TOKENS", "REQUEST ID"}
}

func (t recordTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		area := r.Area
		if area == "" {
			area = "-"
		}
		rows = append(rows, []string{
			r.CreatedAt.Local().Format(time.DateTime),
			r.Operation,
			area,
			r.Status,
			(time.Duration(r.LatencyMS) * time.Millisecond).String(),
			strconv.Itoa(r.PromptTokens + r.CompletionTokens),
			r.RequestID,
		})
	}
	return rows
}

// parseSince accepts a duration relative to now or an RFC3339 timestamp.
func parseSince(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		if d < 0 {
			return time.Time{}, fmt.Errorf("--since duration must be positive, got %s", value)
		}
		return now.Add(-d), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--since must be a duration such as 24h or an RFC3339 time, got %q", value)
	}
	return t, nil
}

// openJournal loads the configuration and opens its journal store.
func openJournal() (*config.Config, journal.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := journal.Open(&cfg.Journal)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return cfg, store, nil
}

func listJournal(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(journalFlags.format)
	if err != nil {
		return err
	}
	since, err := parseSince(journalFlags.since, time.Now())
	if err != nil {
		return err
	}

	_, store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background(), journal.Filter{
		Operation: journalFlags.operation,
		Since:     since,
		Limit:     journalFlags.limit,
	})
	if err != nil {
		return cli.NewCommandError("journal list", err)
	}

	var out interface{} = recordTable(records)
	if strings.EqualFold(journalFlags.format, string(cli.FormatJSON)) {
		if records == nil {
			records = []*journal.Record{}
		}
		out = records
	}
	return formatter.FormatTo(cmd.OutOrStdout(), out)
}

func pruneJournal(cmd *cobra.Command, args []string) error {
	cfg, store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	retentionDays := cfg.Journal.RetentionDays
	if journalFlags.retentionDays >= 0 {
		retentionDays = journalFlags.retentionDays
	}
	maxRecords := cfg.Journal.MaxRecords
	if journalFlags.maxRecords >= 0 {
		maxRecords = journalFlags.maxRecords
	}

	deleted, err := journal.NewPruner(store, retentionDays, maxRecords, nil).Prune(context.Background())
	if err != nil {
		return cli.NewCommandError("journal prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d records\n", deleted)
	return nil
}
