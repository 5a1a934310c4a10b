package main

import (
	"flag"
	"fmt"
	"log"

	usb "github.com/kevmo314/go-usb"

	"github.com/kevmo314/go-audiomoth/pkg/transport"
)

func main() {
	all := flag.Bool("all", false, "List every USB device, not only AudioMoths")
	flag.Parse()

	devices, err := usb.DeviceList()
	if err != nil {
		log.Fatalf("Failed to list devices: %v", err)
	}

	found := 0
	for _, dev := range devices {
		vid, pid := uint16(dev.Descriptor.VendorID), uint16(dev.Descriptor.ProductID)
		moth := vid == transport.DefaultVendorID && pid == transport.DefaultProductID
		if !moth && !*all {
			continue
		}
		found++

		fmt.Printf("%s:%s  %s", transport.FormatID(vid), transport.FormatID(pid), dev.Path)
		if moth {
			fmt.Print("  [AudioMoth]")
		}
		fmt.Println()

		if dev.SysfsStrings != nil {
			if dev.SysfsStrings.Manufacturer != "" {
				fmt.Printf("  Manufacturer: %s\n", dev.SysfsStrings.Manufacturer)
			}
			if dev.SysfsStrings.Product != "" {
				fmt.Printf("  Product: %s\n", dev.SysfsStrings.Product)
			}
			if dev.SysfsStrings.Serial != "" {
				fmt.Printf("  Serial: %s\n", dev.SysfsStrings.Serial)
			}
		}
	}

	if found == 0 {
		fmt.Println("No AudioMoth found. Check the switch is on USB/OFF and the cable carries data.")
	}
}
