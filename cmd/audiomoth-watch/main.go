package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	audiomoth "github.com/kevmo314/go-audiomoth"
	"github.com/kevmo314/go-audiomoth/pkg/config"
	"github.com/kevmo314/go-audiomoth/pkg/packets"
	"github.com/kevmo314/go-audiomoth/pkg/transport"
)

func main() {
	var (
		vid       = flag.String("vid", transport.FormatID(transport.DefaultVendorID), "USB vendor id")
		pid       = flag.String("pid", transport.FormatID(transport.DefaultProductID), "USB product id")
		helperDir = flag.String("dir", ".", "Directory holding bin/<os>/usbhidtool")
		helperOS  = flag.String("os", transport.DefaultOS(), "Helper platform: macOS, linux, windows, windows32")
		variant   = flag.String("variant", "triggered", "Firmware layout: simple, triggered")
		interval  = flag.Duration("interval", 2*time.Second, "Polling interval")
	)
	flag.Parse()

	v, err := packets.ParseVariant(*variant)
	if err != nil {
		log.Fatalf("Invalid variant: %v", err)
	}
	vendor, err := transport.ParseID(*vid)
	if err != nil {
		log.Fatalf("Invalid vid: %v", err)
	}
	product, err := transport.ParseID(*pid)
	if err != nil {
		log.Fatalf("Invalid pid: %v", err)
	}
	if err := transport.Probe(vendor, product); err != nil {
		log.Fatalf("Failed to find device: %v", err)
	}

	app := tview.NewApplication()

	status := tview.NewTable().SetBorders(false)
	status.SetBorder(true).SetTitle(fmt.Sprintf("AudioMoth %s:%s", transport.FormatID(vendor), transport.FormatID(product)))

	schedule := tview.NewTable()
	schedule.SetBorder(true).SetTitle("Schedule")

	logText := tview.NewTextView()
	logText.SetMaxLines(10).SetBorder(true).SetTitle("Log")
	log.SetOutput(logText)

	hid := transport.NewHIDTool(transport.HelperPath(*helperDir, *helperOS), vendor, product)
	hid.Logger = log.Default()
	dev := audiomoth.New(hid, config.Defaults(v), v)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			poll(ctx, app, dev, status, schedule)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	body := tview.NewFlex().
		AddItem(status, 0, 2, true).
		AddItem(schedule, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(logText, 8, 0, false)

	if err := app.SetRoot(root, true).Run(); err != nil {
		panic(err)
	}
}

func poll(ctx context.Context, app *tview.Application, dev *audiomoth.Device, status, schedule *tview.Table) {
	info, err := dev.Info(ctx)
	if err != nil {
		log.Printf("[audiomoth] status: %v", err)
		return
	}
	var periods []packets.Period
	if dev.Variant() == packets.Triggered {
		if periods, err = dev.Schedule(ctx); err != nil {
			log.Printf("[audiomoth] schedule: %v", err)
		}
	}

	app.QueueUpdateDraw(func() {
		status.Clear()
		m := info.Map()
		for i, k := range m.Keys() {
			status.SetCell(i, 0, tview.NewTableCell(k).SetTextColor(tcell.ColorYellow))
			status.SetCell(i, 1, tview.NewTableCell(fmt.Sprint(m[k])))
		}
		status.SetCell(len(m), 0, tview.NewTableCell("polled").SetTextColor(tcell.ColorYellow))
		status.SetCell(len(m), 1, tview.NewTableCell(time.Now().Format(time.TimeOnly)))

		schedule.Clear()
		for i, p := range periods {
			schedule.SetCell(i, 0, tview.NewTableCell(fmt.Sprintf("%d", i)).SetTextColor(tcell.ColorYellow))
			schedule.SetCell(i, 1, tview.NewTableCell(p.String()))
		}
	})
}
