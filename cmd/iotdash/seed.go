package main

import (
	"github.com/spf13/cobra"
	"liyu1981.xyz/iot-dashboard/pkg/seed"
)

func newSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo data",
	}

	seedCmd.AddCommand(
		&cobra.Command{
			Use:   "iot",
			Short: "Create the demo user, three sensors with a day of readings and their alerts",
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := openDatabase()
				if err != nil {
					return err
				}
				report, err := seed.New(d).SeedIOT(cmd.Context())
				if err != nil {
					return err
				}
				report.Print(cmd.OutOrStdout())
				return nil
			},
		},
		&cobra.Command{
			Use:   "smart-home",
			Short: "Create the device type catalog, the demo rooms and their smart devices",
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := openDatabase()
				if err != nil {
					return err
				}
				report, err := seed.New(d).SeedSmartHome(cmd.Context())
				if err != nil {
					return err
				}
				report.Print(cmd.OutOrStdout())
				return nil
			},
		},
	)

	return seedCmd
}
