package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"liyu1981.xyz/iot-dashboard/pkg/seed"
)

func newVerifyCmd() *cobra.Command {
	var (
		limit    int
		xlsxPath string
	)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Print the first IoT devices and the row count of every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDatabase()
			if err != nil {
				return err
			}

			report, err := seed.New(d).Verify(cmd.Context(), limit)
			if err != nil {
				return err
			}
			report.Print(cmd.OutOrStdout())

			if xlsxPath != "" {
				if err := report.WriteXLSX(xlsxPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nreport written to %s\n", xlsxPath)
			}
			return nil
		},
	}

	verifyCmd.Flags().IntVar(&limit, "limit", seed.DefaultVerifyLimit, "number of devices to print")
	verifyCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the report to this Excel file")

	return verifyCmd
}
