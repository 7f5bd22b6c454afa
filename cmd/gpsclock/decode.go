package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gpsclock/internal/nmea"
	"gpsclock/internal/serial"
)

func newDecodeCmd() *cobra.Command {
	var (
		realtime bool
		baud     int
		showAll  bool
	)
	cmd := &cobra.Command{
		Use:   "decode [capture]",
		Short: "Decode a recorded NMEA capture (file or stdin) and print each result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			opts := []serial.Option{serial.WithContext(cmd.Context())}
			if realtime {
				opts = append(opts, serial.WithPace(baud))
			}
			sum, err := decodeStream(cmd.OutOrStdout(), serial.NewSource(r, opts...), nmea.DefaultLayout, showAll)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sum)
			return err
		},
	}
	cmd.Flags().BoolVar(&realtime, "realtime", false, "pace bytes at the serial line rate")
	cmd.Flags().IntVar(&baud, "baud", 9600, "line rate used with --realtime")
	cmd.Flags().BoolVar(&showAll, "all", false, "also print no_match results")
	return cmd
}

type decodeSummary struct {
	counts map[nmea.Status]int
	bytes  uint64
}

func (s decodeSummary) String() string {
	out := fmt.Sprintf("bytes=%d", s.bytes)
	for _, st := range nmea.AllStatuses() {
		out += fmt.Sprintf(" %s=%d", st, s.counts[st])
	}
	return out
}

// decodeStream runs the decoder over src until the source ends. The attempt
// cut short by the end of input is not reported.
func decodeStream(w io.Writer, src *serial.Source, layout nmea.Layout, showAll bool) (decodeSummary, error) {
	sum := decodeSummary{counts: map[nmea.Status]int{}}
	rec := nmea.NewRecord(layout)
	for {
		st := nmea.Decode(rec, src)
		if src.Err() != nil {
			break
		}
		sum.counts[st]++
		if st == nmea.NoMatch && !showAll {
			continue
		}
		line := st.String()
		if st == nmea.Success {
			line += " " + rec.TimeString()
			if rec.HasDate() {
				line += " " + rec.DateString()
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return sum, err
		}
	}
	sum.bytes = src.Count()
	if err := src.Err(); !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		return sum, err
	}
	return sum, nil
}
