package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"gpsclock/internal/nmea"
)

func newSimulateCmd() *cobra.Command {
	var (
		count    int
		interval time.Duration
		noFix    int
		noise    bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write RMC sentences for the current time, like a receiver would",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			ctx := cmd.Context()
			t := time.NewTicker(interval)
			defer t.Stop()
			for i := 0; count <= 0 || i < count; i++ {
				if err := writeSimulated(cmd.OutOrStdout(), time.Now(), i >= noFix, noise); err != nil {
					return err
				}
				if count > 0 && i == count-1 {
					return nil
				}
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "number of sentences (0 runs until interrupted)")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "time between sentences")
	cmd.Flags().IntVar(&noFix, "no-fix", 0, "emit this many empty (acquiring) sentences first")
	cmd.Flags().BoolVar(&noise, "noise", false, "interleave GSV/VTG sentences the decoder should skip")
	return cmd
}

func writeSimulated(w io.Writer, now time.Time, fix, noise bool) error {
	if noise {
		if _, err := io.WriteString(w, nmea.Sentence("GPGSV,1,1,02,03,03,111,00,04,15,270,00")); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, nmea.FormatRMC(now, fix)); err != nil {
		return err
	}
	if noise {
		_, err := fmt.Fprint(w, nmea.Sentence("GPVTG,,,,,,,,,N"))
		return err
	}
	return nil
}
