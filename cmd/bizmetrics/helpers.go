package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/config"
	"github.com/Veraticus/bizmetrics/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes by error kind.
const (
	exitFailure    = 1
	exitValidation = 2
	exitNotFound   = 3
	exitNoData     = 4
	exitExternal   = 5
)

func exitCode(err error) int {
	switch common.KindOf(err) {
	case common.KindValidation:
		return exitValidation
	case common.KindNotFound:
		return exitNotFound
	case common.KindNoData:
		return exitNoData
	case common.KindExternalService:
		return exitExternal
	}
	return exitFailure
}

// describeError renders err for the terminal, including any details it carries.
func describeError(err error) string {
	var tagged *common.Error
	if !errors.As(err, &tagged) {
		return "Error: " + err.Error()
	}

	msg := fmt.Sprintf("Error (%s): %s", tagged.Kind, err.Error())
	if details := common.DetailsOf(err); details != nil {
		if data, jerr := json.MarshalIndent(details, "", "  "); jerr == nil {
			msg += "\n" + string(data)
		}
	}
	return msg
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// openStorage opens the configured database and brings its schema up to date.
func openStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// addRangeFlags registers the date and batch filters shared by the reporting commands.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first sale date to include (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last sale date to include (YYYY-MM-DD)")
	cmd.Flags().String("batch", "", "only include sales from this upload batch")
}

func rangeFromFlags(cmd *cobra.Command, owner string) analytics.Range {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	batch, _ := cmd.Flags().GetString("batch")
	return analytics.Range{OwnerID: owner, DateFrom: from, DateTo: to, BatchID: batch}
}
