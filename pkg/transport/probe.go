package transport

import (
	"fmt"

	usb "github.com/kevmo314/go-usb"
)

type usbID struct {
	vendor, product uint16
}

// Probe reports ErrNotAttached when no USB device with the given ids is
// present, so a missing recorder fails before the helper is started.
func Probe(vid, pid uint16) error {
	devices, err := usb.DeviceList()
	if err != nil {
		return fmt.Errorf("list usb devices: %w", err)
	}
	ids := make([]usbID, 0, len(devices))
	for _, dev := range devices {
		ids = append(ids, usbID{uint16(dev.Descriptor.VendorID), uint16(dev.Descriptor.ProductID)})
	}
	return findDevice(ids, vid, pid)
}

func findDevice(ids []usbID, vid, pid uint16) error {
	for _, id := range ids {
		if id.vendor == vid && id.product == pid {
			return nil
		}
	}
	return fmt.Errorf("%w: %s:%s", ErrNotAttached, FormatID(vid), FormatID(pid))
}
