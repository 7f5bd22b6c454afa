package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gpsclock/internal/clock"
	"gpsclock/internal/config"
	"gpsclock/internal/display"
	"gpsclock/internal/nmea"
	"gpsclock/internal/serial"
	"gpsclock/internal/web"
)

var (
	openSerialFn  = serial.Open
	openDisplayFn = display.OpenGPIO
)

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clock against a serial GPS receiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			return runClock(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "./gpsclock.yaml", "Path to YAML config")
	return cmd
}

func runClock(ctx context.Context, cfg config.Config) error {
	logs := web.NewLogBuffer(500)
	log, err := newLogger(cfg.Log, logs)
	if err != nil {
		return err
	}

	device := cfg.Serial.Device
	if device == "" {
		device = serial.AutoDetect()
		if device == "" {
			return fmt.Errorf("gps auto-detect failed: no serial device found")
		}
	}

	f, err := openSerialFn(device, cfg.Serial.Baud)
	if err != nil {
		return fmt.Errorf("gps open failed device=%s baud=%d: %w", device, cfg.Serial.Baud, err)
	}
	defer f.Close()

	bus := display.Bus(display.NullBus{})
	if cfg.Display.Enable {
		bus, err = openDisplayFn(display.Pins{DIN: cfg.Display.DINPin, CLK: cfg.Display.CLKPin, LOAD: cfg.Display.LOADPin})
		if err != nil {
			return fmt.Errorf("display open failed: %w", err)
		}
	}
	disp := display.NewMax7219(bus)
	defer func() {
		if err := disp.Close(); err != nil {
			log.WithError(err).Warn("display close failed")
		}
	}()
	if err := disp.Init(*cfg.Display.Intensity); err != nil {
		return err
	}
	_ = disp.ShowDashes()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src := serial.NewSource(f, serial.WithContext(ctx))
	svc := clock.New(clock.Config{Layout: nmea.DefaultLayout, UTCOffsetHours: cfg.Display.UTCOffsetHours}, src, disp, log)

	log.WithFields(logrus.Fields{
		"device":     device,
		"baud":       cfg.Serial.Baud,
		"layout":     nmea.DefaultLayout,
		"utc_offset": cfg.Display.UTCOffsetHours,
		"display":    cfg.Display.Enable,
	}).Info("gpsclock starting")

	var wg sync.WaitGroup
	if cfg.Web.Listen != "" {
		status := web.NewStatus(svc)
		status.SetSerial(device, cfg.Serial.Baud, src.Count)
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.WithField("listen", cfg.Web.Listen).Info("status api enabled")
			if err := web.Serve(ctx, cfg.Web.Listen, status, logs); err != nil {
				log.WithError(err).Error("status api stopped")
			}
		}()
	}

	// The tty is pollable (serial.Open keeps O_NONBLOCK), so Close wakes a
	// read that is parked on a silent line.
	go func() {
		<-ctx.Done()
		_ = f.Close()
	}()

	err = svc.Run(ctx)
	cancel()
	wg.Wait()
	log.Info("gpsclock stopping")
	return err
}
