package packets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevmo314/go-audiomoth/pkg/wire"
)

func statusResponse(timeBytes, id []byte, battery byte, version [3]byte, desc string) []string {
	buf := []byte{byte(CommandGetStatus)}
	buf = append(buf, timeBytes...)
	buf = append(buf, id...)
	buf = append(buf, battery)
	buf = append(buf, version[:]...)
	d := make([]byte, FirmwareDescriptionLength)
	copy(d, desc)
	buf = append(buf, d...)
	return wire.FormatTokens(buf)
}

func TestDecodeDeviceInfo_Epoch(t *testing.T) {
	toks := statusResponse(make([]byte, 4), make([]byte, 8), 0x64, [3]byte{1, 2, 3}, "Test")

	info, err := DecodeDeviceInfo(toks)
	require.NoError(t, err)
	assert.Equal(t, "Thu Jan  1 00:00:00 1970", info.TimeString())
	assert.Zero(t, info.UniqueID)
	assert.EqualValues(t, 100, info.BatteryState)
	assert.Equal(t, "1.2.3", info.Version())
	assert.Equal(t, "Test", info.Description)

	m := info.Map()
	assert.Equal(t, uint8(100), m["battery_state"])
	assert.Equal(t, uint64(0), m["id"])
	assert.Equal(t, "1.2.3", m["version"])
}

func TestDecodeDeviceInfo_LittleEndianFields(t *testing.T) {
	// 1500000000 = 0x59682f00
	toks := statusResponse(
		[]byte{0x00, 0x2f, 0x68, 0x59},
		[]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
		3,
		[3]byte{0x01, 0x0a, 0x10},
		"Example-Firmware",
	)
	info, err := DecodeDeviceInfo(toks)
	require.NoError(t, err)
	assert.True(t, info.Time.Equal(time.Unix(1500000000, 0)), "Time = %v", info.Time)
	assert.EqualValues(t, uint64(0x0102030405060708), info.UniqueID)
	assert.Equal(t, "1.10.16", info.Version())
	assert.Equal(t, "Example-Firmware", info.Description)
}

func TestDecodeDeviceInfo_KeepsLeadingNUL(t *testing.T) {
	toks := statusResponse(make([]byte, 4), make([]byte, 8), 0, [3]byte{}, "\x00ab\x00c")
	info, err := DecodeDeviceInfo(toks)
	require.NoError(t, err)
	assert.Equal(t, "\x00ab\x00c", info.Description)
}

func TestDecodeDeviceInfo_Latin1Description(t *testing.T) {
	toks := statusResponse(make([]byte, 4), make([]byte, 8), 0, [3]byte{}, "Caf\xe9 \xb5Moth\xff")
	info, err := DecodeDeviceInfo(toks)
	require.NoError(t, err)
	assert.Equal(t, "Café µMothÿ", info.Description)
}

func TestDecodeDeviceInfo_Truncated(t *testing.T) {
	toks := statusResponse(make([]byte, 4), make([]byte, 8), 0, [3]byte{}, "x")
	for _, n := range []int{0, 1, 10, 16, 48} {
		_, err := DecodeDeviceInfo(toks[:n])
		var insufficient *wire.InsufficientDataError
		assert.ErrorAs(t, err, &insufficient, "len %d", n)
	}
}
