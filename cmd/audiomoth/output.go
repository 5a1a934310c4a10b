package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kevmo314/go-audiomoth/pkg/detector"
	"github.com/kevmo314/go-audiomoth/pkg/packets"
)

type printer struct {
	w      io.Writer
	format string
}

// section prints one titled mapping. YAML output is one document per section.
func (p *printer) section(title string, m packets.Mapping) error {
	if p.format == "yaml" {
		return p.yaml(map[string]any{title: map[string]any(m)})
	}
	fmt.Fprintf(p.w, "%s:\n", title)
	for _, k := range m.Keys() {
		fmt.Fprintf(p.w, "\t[*] %-24s: %v\n", k, m[k])
	}
	return nil
}

func (p *printer) schedule(title string, periods []packets.Period) error {
	if p.format == "yaml" {
		return p.yaml(map[string]any{title: periods})
	}
	fmt.Fprintf(p.w, "%s:\n", title)
	for i, period := range periods {
		fmt.Fprintf(p.w, "\t[%d] %s\n", i, period)
	}
	return nil
}

func (p *printer) report(r *detector.Report) error {
	if p.format == "yaml" {
		blocks := make([]map[string]any, 0, len(r.Blocks))
		for _, b := range r.Blocks {
			blocks = append(blocks, map[string]any{
				"offset":   b.Offset.String(),
				"power":    b.Power,
				"detected": b.Detected,
				"peak":     b.Peak,
			})
		}
		return p.yaml(map[string]any{"simulation": map[string]any{
			"sampleRate": r.SampleRate,
			"decimated":  r.Decimated,
			"detections": r.Detections(),
			"blocks":     blocks,
		}})
	}
	fmt.Fprintf(p.w, "simulation at %d Hz (decimated %t): %d of %d blocks detected\n",
		r.SampleRate, r.Decimated, r.Detections(), len(r.Blocks))
	for _, b := range r.Blocks {
		if b.Detected {
			fmt.Fprintf(p.w, "\t%10s power=%.2f peak=%.0fHz\n", b.Offset, b.Power, b.Peak)
		}
	}
	return nil
}

func (p *printer) yaml(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.w, "---\n%s", out)
	return err
}
