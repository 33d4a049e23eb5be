package cli

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/quiverlabs/nlsh/internal/ports"
)

// Clipboard pipes text into the platform copy tool. The tool is resolved
// once at construction so Enabled reflects what is actually installed, not
// just the operating system.
type Clipboard struct {
	tool []string
}

// NewClipboard probes the environment for a usable copy tool.
func NewClipboard() *Clipboard {
	return &Clipboard{tool: detectCopyTool()}
}

func detectCopyTool() []string {
	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return []string{"pbcopy"}
		}
		return nil
	}
	// Wayland sessions get wl-copy first; xclip talks to an X server that
	// may not be there.
	candidates := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"wl-copy"},
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		candidates = [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
	for _, candidate := range candidates {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return candidate
		}
	}
	return nil
}

// Enabled reports whether a copy tool was found.
func (c *Clipboard) Enabled() bool {
	return len(c.tool) > 0
}

// Copy sends text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	cmd := exec.Command(c.tool[0], c.tool[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

var _ ports.Clipboard = (*Clipboard)(nil)
