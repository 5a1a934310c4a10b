package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	audiomoth "github.com/kevmo314/go-audiomoth"
	"github.com/kevmo314/go-audiomoth/pkg/config"
	"github.com/kevmo314/go-audiomoth/pkg/detector"
	"github.com/kevmo314/go-audiomoth/pkg/packets"
	"github.com/kevmo314/go-audiomoth/pkg/transport"
)

func main() {
	o, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		log.Fatalf("%s failed: %v", o.action, err)
	}
}

func run(ctx context.Context, o *options, stdout io.Writer) error {
	profile, err := config.Load(o.variant, o.paths)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if o.verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	t, err := openTransport(o, logger)
	if err != nil {
		return err
	}
	dev := audiomoth.New(t, profile, o.variant, audiomoth.SetTime(o.setTime), audiomoth.WithLogger(logger))
	p := &printer{w: stdout, format: o.format}

	switch o.action {
	case "get":
		info, err := dev.Info(ctx)
		if err != nil {
			return err
		}
		if err := p.section("AudioMoth info", info.Map()); err != nil {
			return err
		}
		if o.variant != packets.Triggered {
			return nil
		}
		periods, err := dev.Schedule(ctx)
		if err != nil {
			return err
		}
		return p.schedule("schedule", periods)

	case "set":
		applied, err := dev.Configure(ctx, o.overrides)
		if err != nil {
			return err
		}
		if err := p.section("configuration", applied.Map(o.variant)); err != nil {
			return err
		}
		if o.variant != packets.Triggered {
			return nil
		}
		periods, err := dev.SetSchedule(ctx, profile.Schedule())
		if err != nil {
			return err
		}
		return p.schedule("schedule", periods)

	case "simulate":
		c, err := dev.Resolve(o.overrides)
		if err != nil {
			return err
		}
		f, err := os.Open(o.wavPath)
		if err != nil {
			return err
		}
		defer f.Close()
		report, err := detector.Scan(f, *c)
		if err != nil {
			return err
		}
		return p.report(report)
	}
	return fmt.Errorf("unknown action %q", o.action)
}

func openTransport(o *options, logger *log.Logger) (transport.Transport, error) {
	if o.dryRun || o.action == "simulate" {
		if o.action == "get" {
			return nil, errors.New("get needs a device, not a dry run")
		}
		return transport.Loopback{}, nil
	}
	if o.probe {
		if err := transport.Probe(o.vid, o.pid); err != nil {
			return nil, err
		}
	}
	h := transport.NewHIDTool(transport.HelperPath(o.helperDir, o.helperOS), o.vid, o.pid)
	h.Logger = logger
	return h, nil
}
