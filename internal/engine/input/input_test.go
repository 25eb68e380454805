package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslateDragOnlyWhileHeld(t *testing.T) {
	in := New()
	in.translate(&sdl.MouseMotionEvent{XRel: 3, YRel: 4})
	if len(in.Events()) != 0 {
		t.Fatalf("motion without a held button produced %v", in.Events())
	}

	in.translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT})
	in.translate(&sdl.MouseMotionEvent{XRel: 3, YRel: -4})
	in.translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT})
	in.translate(&sdl.MouseMotionEvent{XRel: 1, YRel: 1})

	events := in.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if e := events[0]; e.Type != EventDrag || e.DX != 3 || e.DY != -4 {
		t.Errorf("drag event = %+v", e)
	}
}

func TestTranslateKeysAndResize(t *testing.T) {
	in := New()
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}})
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}})
	in.translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480})
	in.translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600})

	if !in.IsKeyPressed(sdl.SCANCODE_F12) {
		t.Error("F12 not reported")
	}
	if n := len(in.Events()); n != 3 {
		t.Errorf("got %d events, want 3 (key repeat ignored)", n)
	}
	w, h, ok := in.Resized()
	if !ok || w != 800 || h != 600 {
		t.Errorf("Resized() = %d, %d, %v", w, h, ok)
	}
}

func TestTranslateQuit(t *testing.T) {
	in := New()
	if !in.translate(&sdl.QuitEvent{}) {
		t.Error("quit event must stop the loop")
	}
}
