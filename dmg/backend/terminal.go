package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"dmgcore/dmg/input"
	"dmgcore/dmg/input/action"
	"dmgcore/dmg/video"
)

// shadeChars maps a 2-bit Game Boy shade to a terminal glyph, darkest first.
var shadeChars = []rune{'█', '▓', '▒', '░'}

// scaleX compensates for terminal cells being taller than they are wide, so
// the rendered 160x144 frame keeps roughly the right aspect ratio.
const scaleX = 2

// Terminal renders frames as shaded block characters via tcell and reports
// key presses translated through input.DefaultKeyMap.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates and initializes a tcell-backed terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init(config Config) error {
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()
	return nil
}

func (t *Terminal) Update(frame *video.FrameBuffer) ([]InputEvent, error) {
	events := t.pollInput()
	t.render(frame)
	t.screen.Show()
	return events, nil
}

func (t *Terminal) Cleanup() error {
	t.screen.Fini()
	return nil
}

func (t *Terminal) pollInput() []InputEvent {
	var events []InputEvent

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			name := keyName(ev)
			if act, ok := input.GetDefaultMapping(name); ok {
				events = append(events, InputEvent{Action: act, Pressed: true})
			}
			if ev.Key() == tcell.KeyEscape {
				events = append(events, InputEvent{Action: action.Quit, Pressed: true})
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	return events
}

func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyUp:
		return "Up"
	case tcell.KeyDown:
		return "Down"
	case tcell.KeyLeft:
		return "Left"
	case tcell.KeyRight:
		return "Right"
	case tcell.KeyEscape:
		return "Escape"
	default:
		if ev.Rune() != 0 {
			return string(ev.Rune())
		}
		return ""
	}
}

func (t *Terminal) render(fb *video.FrameBuffer) {
	t.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y := uint(0); y < video.FramebufferHeight; y++ {
		for x := uint(0); x < video.FramebufferWidth; x++ {
			char := shadeChars[fb.ShadeRank(x, y)]

			screenX, screenY := int(x)*scaleX, int(y)
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}
