package transport

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kevmo314/go-audiomoth/pkg/wire"
)

const helperName = "usbhidtool"

// HelperOS values name the per-platform helper directories shipped with the
// configurator.
var HelperOS = []string{"macOS", "linux", "windows", "windows32"}

// DefaultOS maps the running platform to a helper directory name.
func DefaultOS() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	case "windows":
		if runtime.GOARCH == "386" {
			return "windows32"
		}
		return "windows"
	default:
		return "linux"
	}
}

// HelperPath returns <dir>/bin/<os>/usbhidtool.
func HelperPath(dir, osName string) string {
	return filepath.Join(dir, "bin", osName, helperName)
}

// HIDTool runs the vendor usbhidtool binary once per exchange. Exchanges on
// one HIDTool are serialized so a device never sees interleaved commands.
type HIDTool struct {
	Path      string
	VendorID  uint16
	ProductID uint16
	// Logger receives one line per exchange when set.
	Logger *log.Logger

	mu sync.Mutex
}

func NewHIDTool(path string, vid, pid uint16) *HIDTool {
	return &HIDTool{Path: path, VendorID: vid, ProductID: pid}
}

func (h *HIDTool) logf(format string, args ...any) {
	if h.Logger != nil {
		h.Logger.Printf(format, args...)
	}
}

func (h *HIDTool) Exchange(ctx context.Context, command []string) ([]string, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrTransport)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := checkExecutable(h.Path); err != nil {
		return nil, fmt.Errorf("%w: helper %s: %v", ErrTransport, h.Path, err)
	}

	id := uuid.New()
	args := append([]string{FormatID(h.VendorID), FormatID(h.ProductID)}, command...)
	h.logf("[hid] %s > %s", id, strings.Join(command, " "))

	cmd := exec.CommandContext(ctx, h.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrTransport, filepath.Base(h.Path), err, msg)
	}

	resp := wire.Tokenize(stdout.String())
	h.logf("[hid] %s < %s", id, strings.Join(resp, " "))
	if len(resp) == 0 {
		return nil, fmt.Errorf("%w: empty response to %s", ErrTransport, command[0])
	}
	return resp, nil
}
