package main

import (
	"bitlife/src/simulation"
	"bitlife/src/universe"
	"bitlife/src/view"
	"github.com/integrii/flaggy"
	"log"
	"strings"
)

func main() {
	eo := initOptions()

	u := universe.New(&universe.Options{
		Width:     eo.Width,
		Height:    eo.Height,
		Randomize: eo.RandomData,
		Seed:      eo.Seed,
	})
	settle(u, eo)

	so := simulation.DefaultOptions
	so.Interval = eo.Interval
	so.MaxSteps = eo.MaxSteps

	if eo.Interactive {
		s := simulation.New(u, &so, nil)
		v := view.NewViewTerminal()
		s.RegisterViewer(v)
		v.Start()
		s.Close()
		return
	}

	stateCh := make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	s := simulation.New(u, &so, stateCh)
	v := view.NewConsoleOut(eo.Width <= 80)
	s.RegisterViewer(v)
	v.Start()

	s.Run()
	for st := range stateCh {
		if st.RunningMode == simulation.RunningStateFinished {
			break
		}
	}
	s.Close()
}

func initOptions() *EnvOptions {
	eo, err := parseEnv()
	if err != nil {
		log.Fatalln(err)
	}

	patternNames := universe.PatternNames()
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&eo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&eo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&eo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&eo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Int64(&eo.Seed, "", "seed", "Random generator seed, 0 seeds from the clock")
	flaggy.Bool(&eo.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.RandomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.Pattern, "p", "pattern", "Pattern stamped at the centre ["+strings.Join(patternNames, "|")+"], empty for an empty field")

	flaggy.Parse()

	if msg := checkOptions(eo); msg != "" {
		flaggy.ShowHelpAndExit(msg)
	}

	return eo
}

//checkOptions returns the problem description or empty string if the options are valid
func checkOptions(eo *EnvOptions) string {
	if eo.Width <= 0 || eo.Height <= 0 {
		return "width and height must be positive"
	}
	if eo.Pattern == "" {
		return ""
	}
	if _, ok := universe.PatternByName(eo.Pattern); !ok {
		return "unknown pattern"
	}
	return ""
}

//settle stamps the configured pattern at the centre unless the field is random or no pattern is set
func settle(u *universe.Universe, eo *EnvOptions) {
	if eo.RandomData || eo.Pattern == "" {
		return
	}
	if p, ok := universe.PatternByName(eo.Pattern); ok {
		u.AddPattern(p, u.Height()/2, u.Width()/2)
	}
}
