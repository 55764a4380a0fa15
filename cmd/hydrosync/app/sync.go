package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aquatrack/hydrosync/internal/app"
	"github.com/aquatrack/hydrosync/internal/sync"
	"github.com/aquatrack/hydrosync/internal/sync/coordinator"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full two-way sync once",
	Long: `Run a full sync for the signed-in user. Families are processed in
order (water entries, settings, profile, challenges, achievements) and the
run stops at the first failing family.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOperation(cmd, coordinator.Coordinator.SyncAll)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Pull remote documents into the local store once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOperation(cmd, coordinator.Coordinator.DownloadAll)
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Push local records to the remote store once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOperation(cmd, coordinator.Coordinator.UploadAll)
	},
}

func init() {
	for _, c := range []*cobra.Command{syncCmd, downloadCmd, uploadCmd} {
		c.Flags().String("format", "", "Output format (json)")
	}
}

type operation func(coordinator.Coordinator, context.Context) (*sync.Report, error)

func runOperation(cmd *cobra.Command, op operation) error {
	ctx := cmd.Context()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	unlock, err := acquireSyncLock(cfg)
	if err != nil {
		return err
	}
	defer unlock()

	tel, shutdownTelemetry, err := setupTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdownTelemetry()

	components, err := app.BuildComponents(ctx,
		app.WithConfig(cfg),
		app.WithMeterProvider(tel.MeterProvider()),
		app.WithTracerProvider(tel.TracerProvider()),
	)
	if err != nil {
		return err
	}
	defer components.Close()

	if err := components.Coordinator.RestoreStatus(ctx); err != nil {
		slog.Warn("Failed to restore sync status", "error", err)
	}

	report, err := op(components.Coordinator, ctx)
	if err != nil {
		return err
	}

	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return renderReport(cmd.OutOrStdout(), report)
}

// renderReport prints one row per family and a totals row
func renderReport(w io.Writer, report *sync.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header("Family", "Uploaded", "Downloaded", "Skipped")

	for _, res := range report.Results {
		if err := table.Append(resultRow(res.Family, res)); err != nil {
			return err
		}
	}
	if err := table.Append(resultRow("total", report.Totals())); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s finished in %s\n", report.Operation, report.Duration)
	return err
}

func resultRow(label string, res sync.Result) []string {
	return []string{
		label,
		strconv.Itoa(res.Uploaded),
		strconv.Itoa(res.Downloaded),
		strconv.Itoa(res.Skipped),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
