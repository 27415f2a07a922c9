package tui

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zephyrtronium/bigcalc"
	"github.com/zephyrtronium/bigcalc/panel"
	"github.com/zephyrtronium/bigcalc/prefs"
)

func TestKeyCommand(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		name string
		cmd  command
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "", cmdQuit},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "", cmdQuit},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter", cmdKey},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace", cmdKey},
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), "7", cmdKey},
		{tcell.NewEventKey(tcell.KeyRune, '^', tcell.ModNone), "^", cmdKey},
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), "c", cmdKey},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "", cmdQuit},
		{tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone), "theme", cmdControl},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), "sci", cmdControl},
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), "history", cmdControl},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), "", cmdNone},
	}
	for _, c := range cases {
		name, cmd := keyCommand(c.ev)
		if name != c.name || cmd != c.cmd {
			t.Errorf("%s: want %q/%d, got %q/%d", c.ev.Name(), c.name, c.cmd, name, cmd)
		}
	}
}

// runUI runs a UI on a simulated screen, posting events as it goes, and
// returns the final frame.
func runUI(t *testing.T, events func(buttons func() []Button) []tcell.Event) panel.Frame {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(40, 40)
	ctx := context.Background()
	u := New(s, panel.New(ctx, bigcalc.NewEvaluator(), prefs.NewMemory(), nil), DefaultPalettes())
	done := make(chan error, 1)
	go func() { done <- u.Run(ctx) }()
	// Layout is a pure function of the frame, so the test can compute the
	// buttons the UI would draw without touching the UI's fields.
	evs := events(func() []Button { return Layout(panel.Frame{}) })
	for _, ev := range evs {
		if err := s.PostEvent(ev); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}
	s.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("UI didn't quit")
	}
	return u.Frame()
}

func TestRunKeys(t *testing.T) {
	f := runUI(t, func(func() []Button) []tcell.Event {
		var evs []tcell.Event
		for _, r := range "2+3" {
			evs = append(evs, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		}
		evs = append(evs,
			tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone),
			tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone),
		)
		return evs
	})
	if f.Display != "5" || !slices.Equal(f.History, []string{"2+3 = 5"}) {
		t.Errorf("wrong frame: %+v", f)
	}
	if !f.Sci || f.Theme != prefs.Light {
		t.Errorf("toggles not applied: %+v", f)
	}
}

func TestRunMouse(t *testing.T) {
	f := runUI(t, func(buttons func() []Button) []tcell.Event {
		var evs []tcell.Event
		for _, label := range []string{"9", "*", "4", "="} {
			b, ok := find(buttons(), label)
			if !ok {
				t.Fatalf("no %q button", label)
			}
			evs = append(evs,
				tcell.NewEventMouse(b.X+1, b.Y, tcell.Button1, tcell.ModNone),
				// Holding the button down doesn't press again.
				tcell.NewEventMouse(b.X+2, b.Y, tcell.Button1, tcell.ModNone),
				tcell.NewEventMouse(b.X+2, b.Y, tcell.ButtonNone, tcell.ModNone),
			)
		}
		// Clicking outside any button does nothing.
		evs = append(evs, tcell.NewEventMouse(39, 39, tcell.Button1, tcell.ModNone))
		return evs
	})
	if f.Display != "36" || f.Previous != "9*4 =" {
		t.Errorf("wrong frame: %+v", f)
	}
}

func TestRunCancel(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	ctx, cancel := context.WithCancel(context.Background())
	u := New(s, panel.New(ctx, bigcalc.NewEvaluator(), prefs.NewMemory(), nil), DefaultPalettes())
	done := make(chan error, 1)
	go func() { done <- u.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("want context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("UI didn't stop")
	}
}
