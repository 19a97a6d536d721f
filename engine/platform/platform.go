package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/math"
)

func init() {
	// GLFW event handling and every GL call must run on the main OS thread
	runtime.LockOSThread()
}

type WindowConfig struct {
	Title  string
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
	VSync  bool
}

// Platform owns the window and its OpenGL 4.1 core context.
type Platform struct {
	Window *glfw.Window

	input    *core.Input
	viewSize math.Vec2
	onResize func(width, height int32)
}

func New(input *core.Input) (*Platform, error) {
	if input == nil {
		return nil, fmt.Errorf("func New - input is required")
	}
	return &Platform{
		Window: nil,
		input:  input,
	}, nil
}

func (p *Platform) Startup(config WindowConfig) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(config.Width), int(config.Height), config.Title, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	p.Window = window
	p.viewSize = math.NewVec2(float32(config.Width), float32(config.Height))

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(int(config.X), int(config.Y))
	p.Window.Show()

	core.LogInfo("window '%s' created (%dx%d)", config.Title, config.Width, config.Height)
	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// WaitMessages blocks until a window event arrives or timeout seconds pass,
// then behaves like PumpMessages.
func (p *Platform) WaitMessages(timeout float64) bool {
	glfw.WaitEventsTimeout(timeout)
	return !p.Window.ShouldClose()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) RequestClose() {
	p.Window.SetShouldClose(true)
}

// ViewSize is the logical size of the view, in the units sprite geometry uses.
func (p *Platform) ViewSize() math.Vec2 {
	return p.viewSize
}

// FramebufferSize is the size of the drawable surface in pixels.
func (p *Platform) FramebufferSize() (int32, int32) {
	w, h := p.Window.GetFramebufferSize()
	return int32(w), int32(h)
}

// OnResize registers fn to be called with the new framebuffer size.
func (p *Platform) OnResize(fn func(width, height int32)) {
	p.onResize = fn
}

// GetAbsoluteTime returns the seconds elapsed since glfw was initialized.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime()
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code := translateKey(key)
	if code == core.KEY_UNKNOWN || action == glfw.Repeat {
		return
	}
	p.input.ProcessKey(code, action == glfw.Press)
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if p.onResize != nil {
		p.onResize(int32(width), int32(height))
	}
}

var keyTable = map[glfw.Key]core.KeyCode{
	glfw.KeyEnter:  core.KEY_ENTER,
	glfw.KeyEscape: core.KEY_ESCAPE,
	glfw.KeySpace:  core.KEY_SPACE,
	glfw.KeyLeft:   core.KEY_LEFT,
	glfw.KeyUp:     core.KEY_UP,
	glfw.KeyRight:  core.KEY_RIGHT,
	glfw.KeyDown:   core.KEY_DOWN,
	glfw.KeyA:      core.KEY_A,
	glfw.KeyD:      core.KEY_D,
	glfw.KeyF:      core.KEY_F,
	glfw.KeyP:      core.KEY_P,
	glfw.KeyR:      core.KEY_R,
	glfw.KeyW:      core.KEY_W,
}

func translateKey(key glfw.Key) core.KeyCode {
	if code, ok := keyTable[key]; ok {
		return code
	}
	return core.KEY_UNKNOWN
}
