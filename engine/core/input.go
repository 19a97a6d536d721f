package core

import "sync"

// Key code definitions
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ENTER   KeyCode = 0x0D
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_LEFT    KeyCode = 0x25
	KEY_UP      KeyCode = 0x26
	KEY_RIGHT   KeyCode = 0x27
	KEY_DOWN    KeyCode = 0x28
	KEY_A       KeyCode = 0x41
	KEY_D       KeyCode = 0x44
	KEY_F       KeyCode = 0x46
	KEY_P       KeyCode = 0x50
	KEY_R       KeyCode = 0x52
	KEY_W       KeyCode = 0x57

	KEY_MAX_KEYS KeyCode = 0xFF
)

// Input holds the keyboard state for the current and the previous frame.
// Platform callbacks write into it, the game reads it during update.
type Input struct {
	mu       sync.RWMutex
	current  [KEY_MAX_KEYS]bool
	previous [KEY_MAX_KEYS]bool
}

func NewInput() *Input {
	return &Input{}
}

func (in *Input) ProcessKey(key KeyCode, pressed bool) {
	if key >= KEY_MAX_KEYS {
		return
	}
	in.mu.Lock()
	in.current[key] = pressed
	in.mu.Unlock()
}

func (in *Input) IsKeyDown(key KeyCode) bool {
	if key >= KEY_MAX_KEYS {
		return false
	}
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.current[key]
}

// WasKeyPressed reports a key that went down since the last Update.
func (in *Input) WasKeyPressed(key KeyCode) bool {
	if key >= KEY_MAX_KEYS {
		return false
	}
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.current[key] && !in.previous[key]
}

// Update copies the current state into the previous one. Call it last in a frame.
func (in *Input) Update() {
	in.mu.Lock()
	in.previous = in.current
	in.mu.Unlock()
}
