// Package ticker drives the quote widget: the periodic fetch-and-render
// cycle, manual refresh, window dragging and the context menu.
//
// App is owned by the UI thread. Network work runs on a goroutine per
// cycle and results come back through Scheduler.Post, so App needs no
// locking. Overlapping cycles are allowed and are not ordered: whichever
// completes last decides what the labels show.
package ticker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quoteticker/internal/quote"
)

// Trigger says what started a fetch cycle.
type Trigger int

const (
	TriggerStartup Trigger = iota
	TriggerTimer
	TriggerManual
)

func (t Trigger) String() string {
	switch t {
	case TriggerStartup:
		return "startup"
	case TriggerTimer:
		return "timer"
	case TriggerManual:
		return "manual"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}

// reschedules reports whether a cycle continues the timer chain once applied.
func (t Trigger) reschedules() bool { return t != TriggerManual }

type State int

const (
	StateIdle State = iota
	StateFetching
	StateApplying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateApplying:
		return "applying"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	menuUpdateNow = "Update Now"
	menuExit      = "Exit"
)

var _ Handler = (*App)(nil)

type offset struct{ x, y int }

type App struct {
	src      QuoteSource
	win      Window
	sched    Scheduler
	interval time.Duration
	log      *zap.Logger
	newID    func() string

	labels   []string
	drag     *offset
	state    State
	inflight int
	closed   bool
}

type Option func(*App)

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithCycleIDs replaces the uuid generator used to tag fetch cycles.
func WithCycleIDs(next func() string) Option {
	return func(a *App) { a.newID = next }
}

func New(src QuoteSource, win Window, sched Scheduler, interval time.Duration, opts ...Option) *App {
	a := &App{
		src:      src,
		win:      win,
		sched:    sched,
		interval: interval,
		log:      zap.NewNop(),
		newID:    uuid.NewString,
		labels:   make([]string, len(src.Instruments())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize shows the loading placeholders and starts the first cycle,
// which in turn starts the timer chain.
func (a *App) Initialize() {
	for i, inst := range a.src.Instruments() {
		a.setLabel(i, inst.Placeholder())
	}
	a.log.Info("widget started",
		zap.Duration("interval", a.interval),
		zap.Int("instruments", len(a.labels)))
	a.Refresh(TriggerStartup)
}

// Refresh starts a fetch cycle. The fetch runs off the UI thread; its
// quotes are applied on the UI thread when it completes. Timer and startup
// cycles schedule the next timer cycle after applying. Manual cycles leave
// the timer chain alone.
func (a *App) Refresh(trigger Trigger) {
	if a.closed {
		return
	}
	id := a.newID()
	log := a.log.With(zap.String("cycle", id), zap.Stringer("trigger", trigger))

	a.inflight++
	a.state = StateFetching
	log.Debug("fetch started", zap.Int("in_flight", a.inflight))

	go func() {
		start := time.Now()
		quotes := a.fetch(id, log)
		elapsed := time.Since(start)
		a.sched.Post(func() { a.apply(trigger, quotes, elapsed, log) })
	}()
}

func (a *App) fetch(id string, log *zap.Logger) (quotes []quote.Quote) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("fetch panicked", zap.Any("panic", r))
			at := time.Now()
			insts := a.src.Instruments()
			quotes = make([]quote.Quote, len(insts))
			for i, inst := range insts {
				quotes[i] = quote.Failure(inst, at)
			}
		}
	}()
	return a.src.Fetch(context.Background(), id)
}

func (a *App) apply(trigger Trigger, quotes []quote.Quote, elapsed time.Duration, log *zap.Logger) {
	a.inflight--
	if a.closed {
		log.Debug("discarding quotes after shutdown")
		return
	}

	a.state = StateApplying
	for i, q := range quotes {
		a.setLabel(i, q.Text)
	}
	if trigger.reschedules() {
		a.sched.After(a.interval, func() { a.Refresh(TriggerTimer) })
	}
	if a.inflight > 0 {
		a.state = StateFetching
	} else {
		a.state = StateIdle
	}

	fields := []zap.Field{zap.Duration("elapsed", elapsed), zap.Int("in_flight", a.inflight)}
	for _, q := range quotes {
		fields = append(fields, zap.String(q.Symbol, q.Text))
	}
	log.Info("quotes applied", fields...)
}

func (a *App) setLabel(i int, text string) {
	if i < 0 || i >= len(a.labels) {
		return
	}
	a.labels[i] = text
	a.win.SetLabel(i, text)
}

// ButtonPress starts a drag on the primary button and opens the context
// menu on the secondary one.
func (a *App) ButtonPress(ev PointerEvent) {
	if a.closed {
		return
	}
	switch ev.Button {
	case ButtonPrimary:
		a.drag = &offset{x: ev.X, y: ev.Y}
	case ButtonSecondary:
		a.ShowContextMenu(ev.RootX, ev.RootY)
	}
}

// Motion keeps the pointer at the offset recorded on press. Off-screen
// positions are allowed.
func (a *App) Motion(ev PointerEvent) {
	if a.closed || a.drag == nil {
		return
	}
	a.win.Move(ev.RootX-a.drag.x, ev.RootY-a.drag.y)
}

func (a *App) ButtonRelease(ev PointerEvent) {
	if ev.Button == ButtonPrimary {
		a.drag = nil
	}
}

// ShowContextMenu opens the "Update Now" / "Exit" menu at the screen
// position. The menu's input grab is released when it closes, whatever was
// chosen.
func (a *App) ShowContextMenu(x, y int) {
	if a.closed {
		return
	}
	items := []MenuItem{
		{Label: menuUpdateNow, Action: func() { a.Refresh(TriggerManual) }},
		{Separator: true},
		{Label: menuExit, Action: a.Shutdown},
	}
	a.win.PopupMenu(x, y, items, a.win.ReleaseMenuGrab)
}

// Shutdown closes the window. Cycles still in flight are abandoned and
// their quotes discarded.
func (a *App) Shutdown() {
	if a.closed {
		return
	}
	a.closed = true
	a.drag = nil
	a.log.Info("shutting down", zap.Int("abandoned", a.inflight))
	a.win.Close()
}

func (a *App) Labels() []string { return append([]string(nil), a.labels...) }

func (a *App) State() State { return a.state }

func (a *App) InFlight() int { return a.inflight }

func (a *App) Closed() bool { return a.closed }
