// Package transport moves token streams between the host and the device.
package transport

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrTransport   = errors.New("transport failure")
	ErrNotAttached = errors.New("device not attached")
)

const (
	DefaultVendorID  uint16 = 0x10c4
	DefaultProductID uint16 = 0x0002
)

// Transport performs one request/response exchange. The command starts with
// the command code token; the response starts with the echoed command byte.
type Transport interface {
	Exchange(ctx context.Context, command []string) ([]string, error)
}

// ParseID parses a USB vendor or product id such as "0x10c4".
func ParseID(s string) (uint16, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid usb id %q: %w", s, err)
	}
	return uint16(v), nil
}

// FormatID renders an id the way the HID helper expects it.
func FormatID(id uint16) string {
	return fmt.Sprintf("0x%04x", id)
}
