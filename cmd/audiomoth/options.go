package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/kevmo314/go-audiomoth/pkg/config"
	"github.com/kevmo314/go-audiomoth/pkg/packets"
	"github.com/kevmo314/go-audiomoth/pkg/transport"
)

const usage = `usage: audiomoth [flags] get|set|simulate

  get       print the device status, and the schedule for the triggered firmware
  set       send the configuration, and the schedule for the triggered firmware
  simulate  run the detector over -wav with the configuration set would send
`

type options struct {
	action    string
	variant   packets.Variant
	vid, pid  uint16
	helperDir string
	helperOS  string
	setTime   bool
	paths     config.Paths
	format    string
	dryRun    bool
	probe     bool
	wavPath   string
	verbose   bool
	overrides config.Overrides
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("audiomoth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		variant   = fs.String("variant", "triggered", "Firmware layout: simple, triggered")
		vid       = fs.String("vid", transport.FormatID(transport.DefaultVendorID), "USB vendor id")
		pid       = fs.String("pid", transport.FormatID(transport.DefaultProductID), "USB product id")
		helperDir = fs.String("dir", ".", "Directory holding bin/<os>/usbhidtool")
		helperOS  = fs.String("os", transport.DefaultOS(), "Helper platform: macOS, linux, windows, windows32")
		setTime   = fs.Bool("set_time", true, "Stamp the triggered configuration with the host clock")
		cfgPath   = fs.String("config", "", "Default configuration file (built-in defaults when empty)")
		ratesPath = fs.String("configurations_file", "", "Sample rate table file (built-in table when empty)")
		schedPath = fs.String("time_schedule", "", "Schedule file (built-in schedule when empty)")
		format    = fs.String("format", "text", "Output format: text, yaml")
		dryRun    = fs.Bool("dry-run", false, "Loop set commands back instead of sending them")
		probe     = fs.Bool("probe", true, "Check the device is attached before running the helper")
		wavPath   = fs.String("wav", "", "Recording for simulate")
		verbose   = fs.Bool("v", false, "Log every exchange")

		sampleRate = fs.Int("samplerate", 0, "Output sample rate, selects an entry of the sample rate table")
		timeVal    = fs.Int64("time", 0, "Device clock, seconds since epoch")
		gain       = fs.Int("gain", 0, "Microphone gain, 1-4")
		sleep      = fs.Int("sleepDuration", 0, "Seconds to sleep between recordings")
		record     = fs.Int("recordDuration", 0, "Seconds to record")
		led        = fs.Bool("enableLED", true, "Flash the LED on detection")
		timezone   = fs.Int("timezone", 0, "Timezone offset in hours")
		useFilter  = fs.Bool("useFilter", false, "Only record when the detector triggers")
		freq       = fs.Int("goertzelFreq", 0, "Detector target frequency, Hz")
		thresh     = fs.Float64("goertzelThresh", 0, "Detector power threshold")
		factor     = fs.Float64("goertzelFactor", 0, "Detector smoothing factor")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o := &options{
		helperDir: *helperDir,
		helperOS:  *helperOS,
		setTime:   *setTime,
		paths:     config.Paths{Config: *cfgPath, Configurations: *ratesPath, Schedule: *schedPath},
		format:    *format,
		dryRun:    *dryRun,
		probe:     *probe,
		wavPath:   *wavPath,
		verbose:   *verbose,
		overrides: config.Overrides{Fields: packets.Mapping{}},
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one action")
	}
	switch o.action = fs.Arg(0); o.action {
	case "get", "set", "simulate":
	default:
		return nil, fmt.Errorf("unknown action %q", o.action)
	}
	switch o.format {
	case "text", "yaml":
	default:
		return nil, fmt.Errorf("unknown format %q", o.format)
	}

	var err error
	if o.variant, err = packets.ParseVariant(*variant); err != nil {
		return nil, err
	}
	if o.vid, err = transport.ParseID(*vid); err != nil {
		return nil, err
	}
	if o.pid, err = transport.ParseID(*pid); err != nil {
		return nil, err
	}

	// only explicitly set fields override the profile
	fields := map[string]func() any{
		"time":           func() any { return *timeVal },
		"gain":           func() any { return *gain },
		"sleepDuration":  func() any { return *sleep },
		"recordDuration": func() any { return *record },
		"enableLED":      func() any { return *led },
		"timezone":       func() any { return *timezone },
		"useFilter":      func() any { return *useFilter },
		"goertzelFreq":   func() any { return *freq },
		"goertzelThresh": func() any { return *thresh },
		"goertzelFactor": func() any { return *factor },
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "samplerate" {
			o.overrides.SampleRate = *sampleRate
		} else if get, ok := fields[f.Name]; ok {
			o.overrides.Fields[f.Name] = get()
		}
	})

	if g, ok := o.overrides.Fields["gain"]; ok && (g.(int) < 1 || g.(int) > 4) {
		return nil, &packets.RangeError{Field: "gain", Value: g, Min: 1, Max: 4}
	}
	if o.action == "simulate" && o.wavPath == "" {
		return nil, errors.New("simulate needs -wav")
	}
	return o, nil
}
