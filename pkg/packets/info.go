package packets

import (
	"bytes"
	"fmt"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/kevmo314/go-audiomoth/pkg/wire"
)

const (
	FirmwareVersionLength     = 3
	FirmwareDescriptionLength = 32
)

// The status packet is filled by the firmware with memcpy, so multi-byte
// fields are in the microcontroller's native little-endian order.
var deviceInfoSchema = wire.Schema{
	Name:    "status",
	Framing: wire.Native,
	Fields: []wire.Field{
		{Name: "time", Width: 4, Kind: wire.Uint, Order: wire.LittleEndian},
		{Name: "uniqueId", Width: 8, Kind: wire.Uint, Order: wire.LittleEndian},
		{Name: "batteryState", Width: 1, Kind: wire.Uint, Order: wire.LittleEndian},
	},
}

// DeviceInfo is the read-only status record returned by get-status.
type DeviceInfo struct {
	Time            time.Time
	UniqueID        uint64
	BatteryState    uint8
	FirmwareVersion [FirmwareVersionLength]byte
	Description     string
}

// Version renders the firmware version as major.minor.patch.
func (d *DeviceInfo) Version() string {
	v := d.FirmwareVersion
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// TimeString renders the device clock the way C's asctime does.
func (d *DeviceInfo) TimeString() string {
	return d.Time.UTC().Format(time.ANSIC)
}

func (d *DeviceInfo) Map() Mapping {
	return Mapping{
		"time":          d.TimeString(),
		"id":            d.UniqueID,
		"battery_state": d.BatteryState,
		"version":       d.Version(),
		"description":   d.Description,
	}
}

// DecodeDeviceInfo parses a get-status response.
func DecodeDeviceInfo(tokens []string) (*DeviceInfo, error) {
	cur, err := skipEcho(tokens)
	if err != nil {
		return nil, err
	}
	values, err := deviceInfoSchema.Decode(cur)
	if err != nil {
		return nil, err
	}
	info := &DeviceInfo{
		Time:         time.Unix(int64(values[0].Uint), 0).UTC(),
		UniqueID:     values[1].Uint,
		BatteryState: uint8(values[2].Uint),
	}

	version, err := cur.Next(FirmwareVersionLength)
	if err != nil {
		return nil, fmt.Errorf("firmware version: %w", err)
	}
	copy(info.FirmwareVersion[:], version)

	desc, err := cur.Next(FirmwareDescriptionLength)
	if err != nil {
		return nil, fmt.Errorf("firmware description: %w", err)
	}
	// each byte is one ISO 8859-1 character
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(bytes.TrimRight(desc, "\x00"))
	if err != nil {
		return nil, fmt.Errorf("firmware description: %w", err)
	}
	info.Description = string(text)
	return info, nil
}
