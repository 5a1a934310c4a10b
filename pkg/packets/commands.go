// Package packets implements the AudioMoth USB application packets on top of
// the wire token codec.
package packets

import "github.com/kevmo314/go-audiomoth/pkg/wire"

type Command byte

// Command codes understood by the device firmware.
const (
	CommandGetStatus        Command = 0x05
	CommandSetConfiguration Command = 0x06
	CommandGetSchedule      Command = 0x09
	CommandSetSchedule      Command = 0x10
)

func (c Command) Token() string {
	return wire.FormatToken(byte(c))
}

func (c Command) String() string {
	switch c {
	case CommandGetStatus:
		return "get-status"
	case CommandSetConfiguration:
		return "set-configuration"
	case CommandGetSchedule:
		return "get-schedule"
	case CommandSetSchedule:
		return "set-schedule"
	default:
		return c.Token()
	}
}

// Request returns the token sequence for a command without payload.
func (c Command) Request() []string {
	return []string{c.Token()}
}

// skipEcho positions a cursor past the command byte the device echoes back.
func skipEcho(tokens []string) (*wire.Cursor, error) {
	c := wire.NewCursor(tokens)
	if err := c.Skip(1); err != nil {
		return nil, err
	}
	return c, nil
}
