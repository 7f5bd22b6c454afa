package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gpsclock",
	Short: "Six digit clock driven by a GPS receiver",
	Long: "gpsclock reads NMEA RMC sentences from a GPS receiver, one byte at a time, " +
		"and shows the received UTC time (shifted to local) on a MAX7219 display.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newRunCmd(), newDecodeCmd(), newSimulateCmd())
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}
