// Package gtkui renders the quote widget with GTK 3.
//
// Window implements ticker.Window and ticker.Scheduler on top of the GTK
// main loop. All methods except Post must be called on the GTK thread.
package gtkui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"quoteticker/internal/config"
	"quoteticker/internal/ticker"
)

var (
	_ ticker.Window    = (*Window)(nil)
	_ ticker.Scheduler = (*Window)(nil)
)

// Init initialises GTK. It must run on the locked main thread before New.
func Init() { gtk.Init(nil) }

// Run blocks in the GTK main loop until the window is closed.
func Run() { gtk.Main() }

type Window struct {
	win    *gtk.Window
	labels []*gtk.Label
	menu   *gtk.Menu

	// press is the button event being dispatched, used to anchor popups.
	press  *gdk.Event
	closed bool
}

// New builds the widget window with one label per line. The window is not
// shown until Show.
func New(cfg config.Window, lines int) (*Window, error) {
	if lines <= 0 {
		return nil, errors.New("gtkui: at least one label is required")
	}

	win, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	win.SetTitle(cfg.Title)
	win.SetDefaultSize(cfg.Width, cfg.Height)
	win.SetResizable(false)
	win.SetDecorated(cfg.Decorated)
	win.SetKeepAbove(cfg.KeepAbove)
	win.Move(cfg.X, cfg.Y)
	win.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.BUTTON_RELEASE_MASK | gdk.POINTER_MOTION_MASK))
	win.Connect("destroy", gtk.MainQuit)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, fmt.Errorf("creating box: %w", err)
	}
	box.SetHomogeneous(true)
	win.Add(box)

	w := &Window{win: win}
	for i := 0; i < lines; i++ {
		l, err := gtk.LabelNew("")
		if err != nil {
			return nil, fmt.Errorf("creating label %d: %w", i, err)
		}
		box.PackStart(l, true, true, 0)
		w.labels = append(w.labels, l)
	}

	if err := applyStyle(cfg); err != nil {
		return nil, err
	}
	return w, nil
}

func applyStyle(cfg config.Window) error {
	css, err := gtk.CssProviderNew()
	if err != nil {
		return fmt.Errorf("creating css provider: %w", err)
	}
	if err := css.LoadFromData(stylesheet(cfg)); err != nil {
		return fmt.Errorf("loading stylesheet: %w", err)
	}
	screen, err := gdk.ScreenGetDefault()
	if err != nil {
		return fmt.Errorf("default screen: %w", err)
	}
	gtk.AddProviderForScreen(screen, css, uint(gtk.STYLE_PROVIDER_PRIORITY_APPLICATION))
	return nil
}

func stylesheet(cfg config.Window) string {
	weight := "normal"
	if cfg.Bold {
		weight = "bold"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "window { background-color: %s; }\n", cfg.Background)
	fmt.Fprintf(&b, "label { color: %s; font-family: %q; font-size: %dpt; font-weight: %s; }\n",
		cfg.Foreground, cfg.FontFamily, cfg.FontSizePt, weight)
	return b.String()
}

// Bind routes the window's pointer events to h.
func (w *Window) Bind(h ticker.Handler) {
	w.win.Connect("button-press-event", func(_ *gtk.Window, ev *gdk.Event) bool {
		if w.closed {
			return false
		}
		b := gdk.EventButtonNewFromEvent(ev)
		if !singlePress(b.Type()) {
			return false
		}
		w.press = ev
		h.ButtonPress(buttonEvent(uint(b.Button()), b.X(), b.Y(), b.XRoot(), b.YRoot()))
		w.press = nil
		return true
	})
	w.win.Connect("motion-notify-event", func(_ *gtk.Window, ev *gdk.Event) bool {
		if w.closed {
			return false
		}
		h.Motion(motionEvent(gdk.EventMotionNewFromEvent(ev).MotionValRoot()))
		return true
	})
	w.win.Connect("button-release-event", func(_ *gtk.Window, ev *gdk.Event) bool {
		if w.closed {
			return false
		}
		b := gdk.EventButtonNewFromEvent(ev)
		h.ButtonRelease(buttonEvent(uint(b.Button()), b.X(), b.Y(), b.XRoot(), b.YRoot()))
		return true
	})
}

// singlePress filters out the extra press events GDK emits for double and
// triple clicks, which would otherwise restart a drag or reopen the menu.
func singlePress(t gdk.EventType) bool { return t == gdk.EVENT_BUTTON_PRESS }

func buttonEvent(button uint, x, y, xRoot, yRoot float64) ticker.PointerEvent {
	return ticker.PointerEvent{
		Button: ticker.Button(button),
		X:      int(x),
		Y:      int(y),
		RootX:  int(xRoot),
		RootY:  int(yRoot),
	}
}

func motionEvent(xRoot, yRoot float64) ticker.PointerEvent {
	return ticker.PointerEvent{RootX: int(xRoot), RootY: int(yRoot)}
}

// onDeactivate runs dismissed at most once per popup. The Popdown issued by
// ReleaseMenuGrab from inside dismissed can emit deactivate again.
func onDeactivate(dismissed func()) func() {
	done := false
	return func() {
		if done || dismissed == nil {
			return
		}
		done = true
		dismissed()
	}
}

func (w *Window) Show() { w.win.ShowAll() }

func (w *Window) SetLabel(index int, text string) {
	if w.closed || index < 0 || index >= len(w.labels) {
		return
	}
	w.labels[index].SetText(text)
}

func (w *Window) Move(x, y int) {
	if w.closed {
		return
	}
	w.win.Move(x, y)
}

// PopupMenu shows the menu at the pointer of the button press being
// handled. The previous menu, if any, is destroyed first.
func (w *Window) PopupMenu(_, _ int, items []ticker.MenuItem, dismissed func()) {
	if w.closed {
		return
	}
	if w.menu != nil {
		w.menu.Destroy()
		w.menu = nil
	}

	menu, err := gtk.MenuNew()
	if err != nil {
		return
	}
	for _, it := range items {
		if it.Separator {
			sep, err := gtk.SeparatorMenuItemNew()
			if err != nil {
				continue
			}
			menu.Append(sep)
			continue
		}
		mi, err := gtk.MenuItemNewWithLabel(it.Label)
		if err != nil {
			continue
		}
		action := it.Action
		mi.Connect("activate", func() {
			if action != nil {
				action()
			}
		})
		menu.Append(mi)
	}
	menu.Connect("deactivate", onDeactivate(dismissed))
	menu.ShowAll()
	menu.PopupAtPointer(w.press)
	w.menu = menu
}

func (w *Window) ReleaseMenuGrab() {
	if w.menu == nil {
		return
	}
	w.menu.Popdown()
}

// Close destroys the window, which ends the main loop. Calling it again
// does nothing.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if w.menu != nil {
		w.menu.Popdown()
	}
	w.win.Destroy()
}

// After arms a one-shot GLib timeout.
func (w *Window) After(d time.Duration, fn func()) {
	glib.TimeoutAdd(uint(d/time.Millisecond), func() bool {
		fn()
		return false
	})
}

// Post queues fn on the GTK main loop. Safe for concurrent use.
func (w *Window) Post(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}
