package transport

import (
	"context"
	"fmt"
	"sync"
)

// Loopback answers every command with the command itself, the way the
// firmware echoes an accepted configuration. Useful for dry runs.
type Loopback struct{}

func (Loopback) Exchange(ctx context.Context, command []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(command) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrTransport)
	}
	return append([]string(nil), command...), nil
}

// Recorder keeps every command it is given and answers from Responses, keyed
// by command code token. Commands without a canned response are looped back.
type Recorder struct {
	Responses map[string][]string
	Err       error

	mu       sync.Mutex
	commands [][]string
}

func (r *Recorder) Exchange(ctx context.Context, command []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, append([]string(nil), command...))
	if r.Err != nil {
		return nil, r.Err
	}
	if len(command) > 0 {
		if resp, ok := r.Responses[command[0]]; ok {
			return resp, nil
		}
	}
	return Loopback{}.Exchange(ctx, command)
}

// Commands returns a copy of the commands seen so far.
func (r *Recorder) Commands() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.commands...)
}
