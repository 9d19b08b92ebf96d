package simulation

import (
	"bitlife/src/universe"
	"testing"
	"time"
)

const waitTimeout = 5 * time.Second

type fakeViewer struct {
	s         *Simulation
	refreshed chan struct{}
}

func newFakeViewer() *fakeViewer {
	return &fakeViewer{refreshed: make(chan struct{}, 100)}
}

func (f *fakeViewer) Refresh() {
	f.refreshed <- struct{}{}
}

func (f *fakeViewer) Register(s *Simulation) {
	f.s = s
}

func (f *fakeViewer) Start() {}

func (f *fakeViewer) waitRefresh(t *testing.T) {
	t.Helper()
	select {
	case <-f.refreshed:
	case <-time.After(waitTimeout):
		t.Fatalf("no refresh")
	}
}

func newTestSimulation(u *universe.Universe, maxSteps int, interval time.Duration) (*Simulation, chan Status) {
	stateCh := make(chan Status, 100)
	o := DefaultOptions
	o.MaxSteps = maxSteps
	o.Interval = interval
	return New(u, &o, stateCh), stateCh
}

//waitFor reads the stateCh until the status with the given mode arrives
func waitFor(t *testing.T, stateCh chan Status, mode RunningState) Status {
	t.Helper()
	timeout := time.After(waitTimeout)
	for {
		select {
		case st := <-stateCh:
			if st.RunningMode == mode {
				return st
			}
		case <-timeout:
			t.Fatalf("timeout waiting for the running mode %v", mode)
		}
	}
}

func newUniverse(width int, height int) *universe.Universe {
	return universe.New(&universe.Options{Width: width, Height: height, Seed: 1})
}

func TestSimulation_Step(t *testing.T) {
	u := newUniverse(8, 8)
	u.AddPattern(universe.Blinker, 3, 4)
	s, stateCh := newTestSimulation(u, 0, 0)
	defer s.Close()

	s.Step()
	waitFor(t, stateCh, RunningStateStep)
	st := waitFor(t, stateCh, RunningStateManual)
	if st.Generation != 1 || st.LiveCells != 3 {
		t.Errorf("status = %+v, want generation 1 with 3 live cells", st)
	}
	s.View(func(u *universe.Universe) {
		for _, row := range []int{2, 3, 4} {
			if !u.Alive(row, 4) {
				t.Errorf("cell (%v, 4) should be alive\n%s", row, u.Render())
			}
		}
	})
}

func TestSimulation_RunUntilExtinct(t *testing.T) {
	u := newUniverse(8, 8)
	u.ToggleCell(2, 2)
	s, stateCh := newTestSimulation(u, 100, 0)
	defer s.Close()

	s.Run()
	waitFor(t, stateCh, RunningStateRun)
	st := waitFor(t, stateCh, RunningStateFinished)
	if st.Generation != 1 || st.LiveCells != 0 {
		t.Errorf("status = %+v, want generation 1 with no live cells", st)
	}
}

func TestSimulation_RunUntilStill(t *testing.T) {
	u := newUniverse(8, 8)
	u.AddPattern(universe.Block, 2, 2)
	s, stateCh := newTestSimulation(u, 100, 0)
	defer s.Close()

	s.Run()
	st := waitFor(t, stateCh, RunningStateFinished)
	if st.Generation != 1 || st.LiveCells != 4 {
		t.Errorf("status = %+v, want generation 1 with 4 live cells", st)
	}
}

func TestSimulation_RunMaxSteps(t *testing.T) {
	u := newUniverse(8, 8)
	u.AddPattern(universe.Blinker, 3, 4)
	s, stateCh := newTestSimulation(u, 5, 0)
	defer s.Close()

	s.Run()
	st := waitFor(t, stateCh, RunningStateFinished)
	if st.Generation != 5 {
		t.Errorf("finished at generation %v, want 5", st.Generation)
	}
}

func TestSimulation_Stop(t *testing.T) {
	u := newUniverse(16, 16)
	u.AddGlider(4, 4)
	s, stateCh := newTestSimulation(u, 0, time.Millisecond)
	defer s.Close()

	s.Run()
	waitFor(t, stateCh, RunningStateStep)
	s.Stop()
	waitFor(t, stateCh, RunningStateManual)
	generation := s.Status().Generation
	time.Sleep(20 * time.Millisecond)
	st := s.Status()
	if st.RunningMode != RunningStateManual {
		t.Errorf("mode = %v after stop", st.RunningMode)
	}
	if st.Generation != generation {
		t.Errorf("generation moved from %v to %v after stop", generation, st.Generation)
	}
}

func TestSimulation_Mutations(t *testing.T) {
	u := newUniverse(16, 16)
	s, stateCh := newTestSimulation(u, 0, 0)
	defer s.Close()
	v := newFakeViewer()
	s.RegisterViewer(v)
	if v.s != s {
		t.Fatalf("viewer is not registered")
	}

	s.Toggle(0, 0)
	v.waitRefresh(t)
	if st := s.Status(); st.LiveCells != 1 {
		t.Errorf("live cells after toggle = %v, want 1", st.LiveCells)
	}

	s.Stamp(universe.Pulsar, 8, 8)
	v.waitRefresh(t)
	if st := s.Status(); st.LiveCells != 49 {
		t.Errorf("live cells after stamp = %v, want 49", st.LiveCells)
	}

	s.Randomize()
	v.waitRefresh(t)

	s.Clear()
	st := waitFor(t, stateCh, RunningStateManual)
	if st.LiveCells != 0 || st.Generation != 0 {
		t.Errorf("status after clear = %+v", st)
	}
	s.View(func(u *universe.Universe) {
		if u.LiveCells() != 0 {
			t.Errorf("universe is not cleared")
		}
	})
}

func TestSimulation_Close(t *testing.T) {
	u := newUniverse(8, 8)
	u.AddPattern(universe.Blinker, 3, 4)
	s, _ := newTestSimulation(u, 0, 0)
	s.Close()
	s.Close()

	done := make(chan struct{})
	go func() {
		s.Step()
		s.Run()
		s.Toggle(1, 1)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatalf("commands block after close")
	}
	if st := s.Status(); st.Generation != 0 {
		t.Errorf("generation = %v after close, want 0", st.Generation)
	}
}

func TestSimulation_RestartKeepsOneLoop(t *testing.T) {
	u := newUniverse(32, 32)
	u.AddPulsar(16, 16)
	o := DefaultOptions
	o.MaxSteps = 0
	o.Interval = 20 * time.Millisecond
	o.MaxSkippedTicks = 1000
	s := New(u, &o, nil)
	defer s.Close()

	generationsDuring := func(d time.Duration) int {
		start := s.Status().Generation
		time.Sleep(d)
		return s.Status().Generation - start
	}

	s.Run()
	single := generationsDuring(400 * time.Millisecond)
	for i := 0; i < 3; i++ {
		s.Stop()
		s.Run()
	}
	restarted := generationsDuring(400 * time.Millisecond)
	if single == 0 {
		t.Fatalf("simulation did not advance")
	}
	if restarted > single*3/2+2 {
		t.Errorf("generations per 400ms: single run %v, after stop and run %v", single, restarted)
	}
	if st := s.Status(); st.RunningMode != RunningStateRun && st.RunningMode != RunningStateStep {
		t.Errorf("mode = %v after restart, want running", st.RunningMode)
	}
}

type slowViewer struct {
	delay time.Duration
}

func (v *slowViewer) Refresh() {
	time.Sleep(v.delay)
}

func (v *slowViewer) Register(_ *Simulation) {}

func (v *slowViewer) Start() {}

func TestSimulation_LateStepFinishes(t *testing.T) {
	u := newUniverse(16, 16)
	u.AddGlider(4, 4)
	o := DefaultOptions
	o.MaxSteps = 0
	o.Interval = 5 * time.Millisecond
	o.MaxSkippedTicks = 2
	stateCh := make(chan Status, 100)
	s := New(u, &o, stateCh)
	defer s.Close()
	s.RegisterViewer(&slowViewer{delay: 60 * time.Millisecond})

	s.Run()
	st := waitFor(t, stateCh, RunningStateFinished)
	if st.Generation != 1 {
		t.Errorf("finished at generation %v, want 1", st.Generation)
	}
	time.Sleep(100 * time.Millisecond)
	st = s.Status()
	if st.RunningMode != RunningStateFinished || st.Generation != 1 {
		t.Errorf("status after late finish = %+v, want finished at generation 1", st)
	}
}
