package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"presensi_backend/internals/configs"
	database "presensi_backend/internals/databases"
	attendanceRepo "presensi_backend/internals/features/attendance/logs/repository"
	"presensi_backend/internals/features/attendance/logs/service"
	staffRepo "presensi_backend/internals/features/staff/staff/repository"
)

type rootOptions struct {
	migrate bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:          "presensi-import",
		Short:        "Import attendance exports from a biometric terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.migrate, "migrate", true, "Run schema migration before importing")

	root.AddCommand(newLenientCmd(&opts), newStrictCmd(&opts))
	return root
}

// buildImporter: config + koneksi DB yang sama dengan server.
func buildImporter(opts *rootOptions) (service.Importer, func(), error) {
	configs.LoadEnv()
	db, err := database.Open(configs.Cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if opts.migrate {
		if err := database.Migrate(db); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	im := service.NewImporter(
		attendanceRepo.NewAttendanceLogRepo(db),
		staffRepo.NewStaffRepo(db),
		service.OptionsFromConfig(configs.Cfg),
	)
	return im, closeFn, nil
}

func newLenientCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lenient <file>",
		Short: "Dedupe and insert new events only (.csv, .xlsx, .xls); safe to re-run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			recs, err := service.ParseRecordsFromFile(args[0], f)
			if err != nil {
				return err
			}
			im, closeFn, err := buildImporter(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := im.ImportLenient(cmd.Context(), recs)
			if printErr := printJSON(cmd.OutOrStdout(), res); printErr != nil {
				return printErr
			}
			return err
		},
	}
}

func newStrictCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strict <file.csv>",
		Short: "Validate every row and insert all or nothing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			im, closeFn, err := buildImporter(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := im.ImportStrictCSV(cmd.Context(), f)
			var verr *service.CSVValidationError
			if errors.As(err, &verr) {
				for _, e := range verr.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "row %d: %s %q: %s\n", e.Row, e.Field, e.Value, e.Message)
				}
				return fmt.Errorf("%d invalid row(s), %d valid; nothing imported", len(verr.Errors), verr.ValidRows)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
