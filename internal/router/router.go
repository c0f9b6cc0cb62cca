package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnloop/internal/screen"
)

// Router owns one screen per key and shows exactly one of them at a time.
// The active key follows the session state, so there is no history stack.
type Router[K comparable] struct {
	screens map[K]screen.Screen
	active  K
}

// New creates a Router showing the screen registered under initial.
func New[K comparable](initial K, screens map[K]screen.Screen) *Router[K] {
	return &Router[K]{
		screens: screens,
		active:  initial,
	}
}

// Show switches to the screen under key and runs its Init. Showing the
// already active key is a no-op.
func (r *Router[K]) Show(key K) tea.Cmd {
	if key == r.active {
		return nil
	}
	s, ok := r.screens[key]
	if !ok {
		return nil
	}
	r.active = key
	return s.Init()
}

// ActiveKey returns the key of the visible screen.
func (r *Router[K]) ActiveKey() K {
	return r.active
}

// Active returns the visible screen, or nil if none is registered.
func (r *Router[K]) Active() screen.Screen {
	return r.screens[r.active]
}

// Update forwards a message to the active screen.
func (r *Router[K]) Update(msg tea.Msg) tea.Cmd {
	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.screens[r.active] = updated
	return cmd
}

// View renders the active screen.
func (r *Router[K]) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
