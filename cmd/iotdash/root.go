package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"liyu1981.xyz/iot-dashboard/pkg/db"
)

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "iotdash",
		Short: "IoT dashboard database tooling and ingest server",
		Long: `iotdash seeds the demo IoT and smart home data, verifies what landed in the
database and runs the ingest server behind the dashboard.

The database is selected with DATABASE_URL, read from the environment or from the
env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file loaded before running, missing is fine")

	rootCmd.AddCommand(
		newSeedCmd(),
		newVerifyCmd(),
		newMigrateCmd(),
		newServeCmd(),
		newSimulateCmd(),
		newBuildConfigCmd(),
	)

	return rootCmd
}

func openDatabase() (*db.DB, error) {
	dialector, err := db.UseDatabaseURL()
	if err != nil {
		return nil, err
	}
	return db.GetInstance(dialector)
}
