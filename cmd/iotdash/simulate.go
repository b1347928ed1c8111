package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/models"
	"liyu1981.xyz/iot-dashboard/pkg/simulate"
)

func newSimulateCmd() *cobra.Command {
	var (
		opts      simulate.Options
		transport string
		baseURL   string
		grpcAddr  string
	)

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Send synthetic readings to a running server",
		Long: `simulate posts readings for every token given with --tokens, or for every active
device in the database when none are given, and prints the throughput.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.Tokens) == 0 {
				d, err := openDatabase()
				if err != nil {
					return err
				}
				var devices []models.IoTDevice
				if err := d.Conn.WithContext(cmd.Context()).Where("is_active = ?", 1).Order("id").Find(&devices).Error; err != nil {
					return fmt.Errorf("read device tokens: %w", err)
				}
				opts.Tokens = common.Mapper(devices, func(d models.IoTDevice) string { return d.DeviceToken })
			}

			var sender simulate.Sender
			switch transport {
			case "http":
				httpSender := simulate.NewHTTPSender(baseURL)
				if err := httpSender.CheckHealth(cmd.Context()); err != nil {
					return err
				}
				sender = httpSender
			case "grpc":
				grpcSender, err := simulate.NewGRPCSender(grpcAddr)
				if err != nil {
					return err
				}
				defer grpcSender.Close()
				sender = grpcSender
			default:
				return fmt.Errorf("unknown transport %q, use http or grpc", transport)
			}

			stats, err := simulate.Run(cmd.Context(), sender, opts)
			if stats != nil {
				stats.Print(cmd.OutOrStdout())
			}
			return err
		},
	}

	simulateCmd.Flags().StringSliceVar(&opts.Tokens, "tokens", nil, "device tokens, defaults to every active device")
	simulateCmd.Flags().IntVar(&opts.Count, "count", 10, "readings per device")
	simulateCmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "devices sending at once, 0 for all")
	simulateCmd.Flags().DurationVar(&opts.Interval, "interval", 100*time.Millisecond, "pause between two readings of one device")
	simulateCmd.Flags().StringVar(&transport, "transport", "http", "http or grpc")
	simulateCmd.Flags().StringVar(&baseURL, "url", "http://127.0.0.1:1080", "base URL of the HTTP server")
	simulateCmd.Flags().StringVar(&grpcAddr, "grpc-addr", "127.0.0.1:10801", "address of the gRPC server")

	return simulateCmd
}
