package ticker

import (
	"context"
	"time"

	"quoteticker/internal/quote"
)

type Button int

const (
	ButtonPrimary   Button = 1
	ButtonMiddle    Button = 2
	ButtonSecondary Button = 3
)

// PointerEvent is a mouse event. X and Y are relative to the window's
// top-left corner, RootX and RootY to the screen.
type PointerEvent struct {
	Button Button
	X      int
	Y      int
	RootX  int
	RootY  int
}

// MenuItem is one entry of a popup menu. Separator items have no label or action.
type MenuItem struct {
	Label     string
	Separator bool
	Action    func()
}

// Window is the presentation layer driven by the App. Every method is
// called on the UI thread.
type Window interface {
	SetLabel(index int, text string)
	Move(x, y int)
	// PopupMenu shows items at the screen position and returns without
	// waiting for a choice. dismissed runs once the menu is closed,
	// whether or not an item was activated.
	PopupMenu(x, y int, items []MenuItem, dismissed func())
	ReleaseMenuGrab()
	Close()
}

// Scheduler runs callbacks on the UI thread.
type Scheduler interface {
	// After runs fn once, d from now.
	After(d time.Duration, fn func())
	// Post runs fn as soon as the UI thread is free. Safe for concurrent use.
	Post(fn func())
}

// Handler receives pointer events from the window.
type Handler interface {
	ButtonPress(ev PointerEvent)
	Motion(ev PointerEvent)
	ButtonRelease(ev PointerEvent)
}

// QuoteSource produces one quote per instrument for a fetch cycle. Fetch
// blocks on the network and must not be called on the UI thread.
type QuoteSource interface {
	Instruments() []quote.Instrument
	Fetch(ctx context.Context, cycle string) []quote.Quote
}
