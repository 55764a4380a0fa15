package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aquatrack/hydrosync/internal/local/sqlite"
	"github.com/aquatrack/hydrosync/internal/model"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a drink in the local store",
	Long: `Record a drink in the local store. Nothing is sent to the remote store
until the next sync or upload.`,
	Example: `  hydrosync log --amount 250
  hydrosync log --amount 330 --type coffee --at 2024-03-01T08:30:00Z`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().Int("amount", 0, "Amount in millilitres (required)")
	logCmd.Flags().String("type", model.DefaultDrinkType, "Drink type")
	logCmd.Flags().String("at", "", "Time of the drink in RFC 3339 format (default now)")

	if err := logCmd.MarkFlagRequired("amount"); err != nil {
		panic(err)
	}
}

func runLog(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	amount, err := cmd.Flags().GetInt("amount")
	if err != nil {
		return fmt.Errorf("failed to get amount flag: %w", err)
	}
	drinkType, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	atFlag, err := cmd.Flags().GetString("at")
	if err != nil {
		return fmt.Errorf("failed to get at flag: %w", err)
	}

	entry, err := buildWaterEntry(amount, drinkType, atFlag, time.Now())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.GetLocalPath())
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer store.Close()

	inserted, err := store.InsertWaterEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}
	if !inserted {
		return fmt.Errorf("an entry with id %d already exists", entry.ID)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d ml of %s at %s\n",
		entry.AmountML, entry.DrinkType, entry.Timestamp.Local().Format(time.RFC3339))
	return err
}

// buildWaterEntry validates the flags and creates the entry
func buildWaterEntry(amount int, drinkType, at string, now time.Time) (model.WaterEntry, error) {
	if amount <= 0 {
		return model.WaterEntry{}, fmt.Errorf("amount must be positive, got %d", amount)
	}

	ts := now
	if at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return model.WaterEntry{}, fmt.Errorf("invalid --at value: %w", err)
		}
		ts = parsed
	}

	return model.NewWaterEntry(amount, drinkType, ts), nil
}
