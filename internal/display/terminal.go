package display

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oledtop/oledtop/internal/pixel"
)

var (
	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)

	previewTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45"))

	previewHint = lipgloss.NewStyle().
			Faint(true)
)

// Terminal previews frames in the terminal, two pixels per character cell
// using half blocks, so the daemon can run on a machine with no panel
// attached.
type Terminal struct {
	prog   *tea.Program
	frames chan *pixel.Buffer
	done   chan struct{}
	quit   sync.Once
	w, h   int
}

// OpenTerminal starts the preview UI in the alternate screen. onQuit fires
// once when the UI exits, whether from a pressed key or from Close; wiring
// it to the daemon's cancel func lets q shut the whole process down.
func OpenTerminal(w, h int, onQuit func()) *Terminal {
	t := &Terminal{
		frames: make(chan *pixel.Buffer, 1),
		done:   make(chan struct{}),
		w:      w,
		h:      h,
	}
	t.prog = tea.NewProgram(
		&previewModel{frames: t.frames, w: w, h: h},
		tea.WithAltScreen(),
	)
	go func() {
		defer close(t.done)
		_, _ = t.prog.Run()
		if onQuit != nil {
			onQuit()
		}
	}()
	return t
}

func (t *Terminal) Bounds() (int, int) { return t.w, t.h }

// Display hands a copy of the frame to the UI through a one slot mailbox:
// when the UI lags, the pending frame is replaced rather than blocking the
// render loop. Display is called from the single render goroutine only.
func (t *Terminal) Display(buf *pixel.Buffer) error {
	frame := buf.Clone()
	select {
	case t.frames <- frame:
		return nil
	default:
	}
	select {
	case <-t.frames:
	default:
	}
	select {
	case t.frames <- frame:
	default:
	}
	return nil
}

func (t *Terminal) Close() error {
	t.quit.Do(t.prog.Quit)
	<-t.done
	return nil
}

// previewFPS is how often the UI pulls the latest frame. Faster than the
// render loop's tick so no frame waits a full UI cycle.
const previewFPS = 30

type frameTickMsg struct{}

type previewModel struct {
	frames <-chan *pixel.Buffer
	latest *pixel.Buffer
	w, h   int
}

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/previewFPS, func(time.Time) tea.Msg {
		return frameTickMsg{}
	})
}

func (m *previewModel) Init() tea.Cmd { return frameTick() }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case frameTickMsg:
		select {
		case f := <-m.frames:
			m.latest = f
		default:
		}
		return m, frameTick()
	}
	return m, nil
}

func (m *previewModel) View() string {
	header := previewTitle.Render("oledtop") + previewHint.Render("  q to quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		previewBorder.Render(renderCells(m.latest, m.w, m.h)),
	)
}

// renderCells maps two vertically stacked pixels onto one half-block rune.
// A nil buffer renders as a dark panel.
func renderCells(buf *pixel.Buffer, w, h int) string {
	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := buf != nil && buf.On(x, y)
			bottom := buf != nil && buf.On(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
