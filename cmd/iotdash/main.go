// Command iotdash seeds, verifies and serves the IoT dashboard database.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-dashboard/pkg/common"
	"liyu1981.xyz/iot-dashboard/pkg/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, out io.Writer) int {
	logger := common.GetLoggerWith(common.LoggerNameCLI)
	defer common.Sync()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	err := cmd.ExecuteContext(ctx)

	if closeErr := db.CloseInstance(); closeErr != nil {
		logger.Warn("Close database", zap.Error(closeErr))
	}

	if err != nil {
		logger.Error("Command failed", zap.Error(err))
		return 1
	}
	return 0
}
