package tui

import (
	"bytes"
	"sync"

	"github.com/vito/midterm"
)

// Vterm keeps the terminal state of one command's output and renders a
// scrollable window of it.
type Vterm struct {
	mu      sync.Mutex
	vt      *midterm.Terminal
	offset  int
	height  int
	viewBuf bytes.Buffer
}

// NewVterm creates a new Vterm instance.
func NewVterm() *Vterm {
	return &Vterm{
		vt:     midterm.NewAutoResizingTerminal(),
		height: 1,
	}
}

// Write feeds command output to the terminal. A view scrolled to the bottom keeps following it.
func (v *Vterm) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	follow := v.offset >= v.maxOffset()
	n, err := v.vt.Write(p)
	if follow {
		v.offset = v.maxOffset()
	}
	return n, err
}

// Resize sets the size of the visible window.
func (v *Vterm) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	follow := v.offset >= v.maxOffset()
	v.height = max(height, 1)
	v.vt.ResizeX(max(width, 1))
	if follow {
		v.offset = v.maxOffset()
	}
	v.clamp()
}

// Scroll moves the window by delta lines.
func (v *Vterm) Scroll(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.offset += delta
	v.clamp()
}

// ScrollToBottom moves the window to the newest output.
func (v *Vterm) ScrollToBottom() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.offset = v.maxOffset()
}

// Height returns the size of the visible window in lines.
func (v *Vterm) Height() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.height
}

// UsedHeight returns the number of lines written so far.
func (v *Vterm) UsedHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.UsedHeight()
}

// View renders the visible window.
func (v *Vterm) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.viewBuf.Reset()
	v.clamp()
	for i := range v.height {
		row := v.offset + i
		if row >= v.vt.UsedHeight() {
			break
		}
		if i > 0 {
			_ = v.viewBuf.WriteByte('\n')
		}
		_ = v.vt.RenderLine(&v.viewBuf, row)
	}
	return v.viewBuf.String()
}

func (v *Vterm) clamp() {
	v.offset = min(max(v.offset, 0), v.maxOffset())
}

func (v *Vterm) maxOffset() int {
	return max(v.vt.UsedHeight()-v.height, 0)
}
