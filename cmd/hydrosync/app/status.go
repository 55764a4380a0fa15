package app

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aquatrack/hydrosync/internal/app"
	"github.com/aquatrack/hydrosync/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last sync status of the signed-in user",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().String("format", "", "Output format (json)")
}

// statusReport is the output of the status command
type statusReport struct {
	Status           status.SyncStatus `json:"status"`
	RemoteLastSyncAt *time.Time        `json:"remoteLastSyncAt,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	components, err := app.BuildComponents(ctx, app.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer components.Close()

	if err := components.Coordinator.RestoreStatus(ctx); err != nil {
		slog.Warn("Failed to restore sync status", "error", err)
	}

	report := statusReport{Status: components.Coordinator.CurrentStatus()}
	last, err := components.Coordinator.LastSyncTime(ctx)
	if err != nil {
		slog.Warn("Failed to read remote last sync time", "error", err)
	}
	report.RemoteLastSyncAt = last

	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return renderStatus(cmd.OutOrStdout(), report)
}

// renderStatus prints the status as a two column table
func renderStatus(w io.Writer, report statusReport) error {
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")

	s := report.Status
	rows := [][]string{
		{"Phase", string(s.Phase)},
		{"Message", s.Message},
		{"Last attempt", formatTime(s.LastAttempt)},
		{"Attempts since success", strconv.Itoa(s.AttemptCount)},
		{"Last successful sync", formatTime(s.LastSyncTime)},
		{"Remote watermark", formatTime(report.RemoteLastSyncAt)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(time.RFC3339)
}
