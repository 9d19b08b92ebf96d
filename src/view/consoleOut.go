package view

import (
	"bitlife/src/simulation"
	"bitlife/src/universe"
	"fmt"
	"github.com/logrusorgru/aurora"
	"io"
	"os"
	"sort"
	"time"
)

//ConsoleOut prints the simulation progress as plain text lines
type ConsoleOut struct {
	s          *simulation.Simulation
	w          io.Writer
	startTime  time.Time
	printField bool
	finished   bool
}

//NewConsoleOut creates the viewer writing to stdout
//printField adds the rendered field to the final report
func NewConsoleOut(printField bool) *ConsoleOut {
	return NewConsoleOutTo(os.Stdout, printField)
}

func NewConsoleOutTo(w io.Writer, printField bool) *ConsoleOut {
	return &ConsoleOut{w: w, printField: printField}
}

func (c *ConsoleOut) Refresh() {
	st := c.s.Status()
	if st.RunningMode == simulation.RunningStateFinished {
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		fmt.Fprintln(c.w, aurora.Red("\nFinished:"))
		c.printHashData(resultData)
		if c.printField {
			c.s.View(func(u *universe.Universe) {
				fmt.Fprint(c.w, u.Render())
			})
		}
	} else if st.RunningMode == simulation.RunningStateRun {
		c.finished = false
		if st.Generation%10 == 0 {
			fmt.Fprintf(c.w, "  Generations done: %v\n", st.Generation)
		}
	}
}

func (c *ConsoleOut) Register(s *simulation.Simulation) {
	c.s = s
	o := c.s.Options()
	var width, height int
	c.s.View(func(u *universe.Universe) {
		width, height = u.Width(), u.Height()
	})
	fmt.Fprintln(c.w, aurora.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", width, height),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
