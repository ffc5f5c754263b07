package testclient

import (
	"fmt"
	"io"
	"time"
)

const menuLine = "Enter [1] or [2]"

// Result is the outcome of one scenario.
type Result struct {
	Name    string
	Passed  bool
	Message string
}

// Step sends a command and waits for a line containing Expect.
// An empty Send only waits; an empty Expect only sends.
type Step struct {
	Send   string
	Expect string
}

// Scenario is a scripted playthrough on a fresh connection.
type Scenario struct {
	Name  string
	Steps []Step
}

// Scenarios exercise the built-in story from the menu onward.
var Scenarios = []Scenario{
	{
		Name: "menu quit",
		Steps: []Step{
			{Expect: menuLine},
			{Send: "2", Expect: "Quitting..."},
		},
	},
	{
		Name: "menu rejects bad input",
		Steps: []Step{
			{Expect: menuLine},
			{Send: "abc", Expect: "Invalid input"},
			{Send: "7", Expect: "Invalid choice"},
			{Send: "2", Expect: "Quitting..."},
		},
	},
	{
		Name: "locked cell door",
		Steps: []Step{
			{Expect: menuLine},
			{Send: "1", Expect: "You wake up"},
			{Send: "north", Expect: "You face the cell door..."},
			{Send: "north", Expect: "The door is locked."},
		},
	},
	{
		Name: "escape the cell",
		Steps: []Step{
			{Expect: menuLine},
			{Send: "1", Expect: "You wake up"},
			{Send: "south"},
			{Send: "search", Expect: "You found a cell key."},
			{Send: "take", Expect: "cell key has been added to your inventory."},
			{Send: "north"},
			{Send: "north"},
			{Send: "open", Expect: "You use the cell key to unlock the door."},
			{Send: "inventory", Expect: "cell key"},
		},
	},
	{
		Name: "unknown command",
		Steps: []Step{
			{Expect: menuLine},
			{Send: "1", Expect: "You wake up"},
			{Send: "dance wildly", Expect: "You can't do that right now."},
		},
	},
}

// Run plays one scenario against address. Progress goes to verbose when
// it is not nil.
func (s Scenario) Run(address string, timeout time.Duration, verbose io.Writer) Result {
	c, err := Dial(address)
	if err != nil {
		return Result{Name: s.Name, Message: err.Error()}
	}
	defer c.Close()

	for i, step := range s.Steps {
		if step.Send != "" {
			logf(verbose, "  [%s] send %q\n", s.Name, step.Send)
			if err := c.Send(step.Send); err != nil {
				return Result{Name: s.Name, Message: fmt.Sprintf("step %d: %v", i+1, err)}
			}
		}
		if step.Expect == "" {
			continue
		}
		if !c.WaitFor(step.Expect, timeout) {
			return Result{
				Name:    s.Name,
				Message: fmt.Sprintf("step %d: never saw %q", i+1, step.Expect),
			}
		}
		logf(verbose, "  [%s] OK: %q\n", s.Name, step.Expect)
	}
	return Result{Name: s.Name, Passed: true, Message: fmt.Sprintf("%d steps", len(s.Steps))}
}

// RunAll plays every scenario in order.
func RunAll(address string, timeout time.Duration, verbose io.Writer) []Result {
	results := make([]Result, 0, len(Scenarios))
	for _, s := range Scenarios {
		results = append(results, s.Run(address, timeout, verbose))
	}
	return results
}

// PrintResults writes a summary and reports whether everything passed.
func PrintResults(w io.Writer, results []Result) bool {
	passed := 0
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "Scenario Results")
	fmt.Fprintln(w, "============================================================")
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
			passed++
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", status, r.Name, r.Message)
	}
	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintf(w, "Total: %d | Passed: %d | Failed: %d\n", len(results), passed, len(results)-passed)
	return passed == len(results)
}

func logf(w io.Writer, format string, args ...any) {
	if w != nil {
		fmt.Fprintf(w, format, args...)
	}
}
