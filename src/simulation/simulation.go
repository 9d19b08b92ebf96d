package simulation

import (
	"bitlife/src/universe"
	"sync"
	"time"
)

//Options represents the simulation's configurable options
type Options struct {
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(s *Simulation)
	Start()
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var DefaultOptions = Options{
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//Simulation owns the Universe and schedules its steps
//every command is executed by the control goroutine one by one,
//the Universe is guarded by the mutex so viewers can read it meanwhile
type Simulation struct {
	options Options
	state   struct {
		Status
		loop int //token of the current run loop, bumped to retire it
		sync.Mutex
	}
	universe struct {
		*universe.Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//New creates the Simulation over the Universe and starts the control goroutine
//stateCh receives the status on every running mode switch, can be nil
func New(u *universe.Universe, o *Options, stateCh chan Status) *Simulation {
	if o == nil {
		o = &DefaultOptions
	}
	s := &Simulation{
		options:   *o,
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
	}
	s.universe.Universe = u
	s.state.Generation = u.Generation()
	s.state.LiveCells = u.LiveCells()
	go s.mainLoop()
	return s
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
	v.Register(s)
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	return s.options
}

//View calls fn with the Universe locked against mutation
//fn must not keep the Universe or its Cells buffer after return
func (s *Simulation) View(fn func(u *universe.Universe)) {
	s.universe.Lock()
	defer s.universe.Unlock()
	fn(s.universe.Universe)
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.do(s.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.do(s.stop)
}

//Step does one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.do(s.step)
}

//Clear kills all cells and resets the counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.do(s.clear)
}

//Randomize populates the universe with random data, returns immediately
//ignored while the simulation is running
func (s *Simulation) Randomize() {
	s.do(func() {
		if mode := s.mode(); mode == RunningStateRun || mode == RunningStateStep {
			return
		}
		s.mutate(func(u *universe.Universe) { u.Randomize() })
	})
}

//Toggle inverts the cell state at row, column, returns immediately
func (s *Simulation) Toggle(row int, column int) {
	s.do(func() {
		s.mutate(func(u *universe.Universe) { u.ToggleCell(row, column) })
	})
}

//Stamp adds the pattern anchored at row, column, returns immediately
func (s *Simulation) Stamp(p universe.Pattern, row int, column int) {
	s.do(func() {
		s.mutate(func(u *universe.Universe) { u.AddPattern(p, row, column) })
	})
}

//Close stops the control goroutine, returns immediately
//commands issued after Close are dropped
func (s *Simulation) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
}

//do queues the command for the control goroutine
//returns false if the simulation is closed
func (s *Simulation) do(cmd func()) bool {
	select {
	case <-s.closeCh:
		return false
	default:
	}
	select {
	case s.controlCh <- cmd:
		return true
	case <-s.closeCh:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	for {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case <-s.closeCh:
			return
		}
	}
}

func (s *Simulation) mode() RunningState {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.RunningMode
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.notify(s.setRunningState(to))
}

func (s *Simulation) setRunningState(to RunningState) Status {
	s.state.Lock()
	defer s.state.Unlock()
	s.state.RunningMode = to
	return s.state.Status
}

//notify writes the status to the stateCh if any
func (s *Simulation) notify(st Status) {
	if s.stateCh != nil {
		select {
		case s.stateCh <- st:
		case <-s.closeCh:
		}
	}
}

//mutate applies fn to the locked universe and refreshes the counters and views
func (s *Simulation) mutate(fn func(u *universe.Universe)) {
	s.universe.Lock()
	fn(s.universe.Universe)
	liveCells := s.universe.LiveCells()
	s.universe.Unlock()

	s.state.Lock()
	s.state.LiveCells = liveCells
	s.state.Unlock()
	s.refreshView()
}

//run starts the simulation loop
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (s *Simulation) run() {
	if mode := s.mode(); mode == RunningStateRun || mode == RunningStateStep {
		return
	}
	loop := s.nextLoop()
	s.switchRunningState(RunningStateRun)
	go func() {
		done := make(chan struct{}, 1)
		for s.running(loop) {
			if !s.do(func() {
				//the loop may have been stopped while the command was queued
				if s.running(loop) {
					s.step()
				}
				done <- struct{}{}
			}) {
				return
			}
			if !s.wait(done) {
				//the step is late for too many ticks
				if st, ok := s.finishLoop(loop); ok {
					s.refreshView()
					s.notify(st)
				}
				return
			}
			if s.options.Interval > 0 {
				time.Sleep(s.options.Interval)
			}
		}
	}()
}

//nextLoop retires the current run loop and returns the token for a new one
func (s *Simulation) nextLoop() int {
	s.state.Lock()
	defer s.state.Unlock()
	s.state.loop++
	return s.state.loop
}

//running reports whether the run loop with the token is still the current one
func (s *Simulation) running(loop int) bool {
	s.state.Lock()
	defer s.state.Unlock()
	mode := s.state.RunningMode
	return s.state.loop == loop && (mode == RunningStateRun || mode == RunningStateStep)
}

//finishLoop switches to RunningStateFinished if the loop is still the current one
func (s *Simulation) finishLoop(loop int) (Status, bool) {
	s.state.Lock()
	defer s.state.Unlock()
	if s.state.loop != loop {
		return s.state.Status, false
	}
	s.state.loop++
	s.state.RunningMode = RunningStateFinished
	return s.state.Status, true
}

//wait waits for the queued step to complete
//returns false if it took longer than MaxSkippedTicks intervals
func (s *Simulation) wait(done chan struct{}) bool {
	if s.options.Interval <= 0 {
		select {
		case <-done:
		case <-s.closeCh:
		}
		return true
	}
	ticker := time.NewTicker(s.options.Interval)
	defer ticker.Stop()
	skipped := 0
	for {
		select {
		case <-done:
			return skipped <= s.options.MaxSkippedTicks
		case <-s.closeCh:
			return true
		case <-ticker.C:
			skipped++
		}
	}
}

//stop stops the simulation running cycle
func (s *Simulation) stop() {
	s.nextLoop()
	if s.mode() == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (s *Simulation) step() {
	finished := false
	rm := s.mode()
	defer func() {
		//views see the final state before the stateCh listeners do
		to := rm
		if finished {
			to = RunningStateFinished
		}
		st := s.setRunningState(to)
		s.refreshView()
		s.notify(st)
	}()

	maxIter := s.options.MaxSteps
	if maxIter != 0 && s.Status().Generation >= maxIter {
		finished = true
		return
	}
	s.switchRunningState(RunningStateStep)
	isAlive, changed := s.nextIteration()
	if !isAlive || !changed {
		finished = true
	}
}

//nextIteration ticks the universe once and updates all related metrics
func (s *Simulation) nextIteration() (hasLiveCells bool, changed bool) {
	s.universe.Lock()
	start := time.Now()
	s.universe.Tick()
	elapsed := time.Since(start)
	liveCells := s.universe.LiveCells()
	generation := s.universe.Generation()
	changed = s.universe.Changed()
	s.universe.Unlock()

	s.state.Lock()
	s.state.Generation = generation
	s.state.LiveCells = liveCells
	s.state.IterationTime = elapsed
	s.state.Unlock()
	return liveCells > 0, changed
}

//clear clears the universe data, reset all counters
func (s *Simulation) clear() {
	s.nextLoop()
	s.universe.Lock()
	s.universe.Clear()
	s.universe.Unlock()

	s.state.Lock()
	s.state.Generation = 0
	s.state.LiveCells = 0
	s.state.IterationTime = 0
	s.state.Unlock()
	s.switchRunningState(RunningStateManual)
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	for _, v := range s.views {
		v.Refresh()
	}
}
