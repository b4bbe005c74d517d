package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner. It does nothing when the output is not
// a terminal, so piped and CI output stays clean.
type Spinner struct {
	s       *spinner.Spinner
	out     io.Writer
	symbols ProgressSymbols
	enabled bool
}

// NewSpinner creates a spinner writing to out with the given capabilities.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{out: out, symbols: symbols, enabled: caps.IsTTY}
	if sp.enabled {
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(out))
		if !caps.SupportsColor {
			sp.s.Color("reset")
		}
	}
	return sp
}

// Start shows message next to the spinner.
func (sp *Spinner) Start(message string) {
	if !sp.enabled {
		return
	}
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Stop removes the spinner line.
func (sp *Spinner) Stop() {
	if !sp.enabled {
		return
	}
	sp.s.Stop()
}

// Success stops the spinner and prints message with a checkmark.
func (sp *Spinner) Success(message string) {
	sp.finish(sp.symbols.Checkmark, message)
}

// Fail stops the spinner and prints message with a failure mark.
func (sp *Spinner) Fail(message string) {
	sp.finish(sp.symbols.Failure, message)
}

func (sp *Spinner) finish(mark, message string) {
	if !sp.enabled {
		return
	}
	sp.s.Stop()
	fmt.Fprintf(sp.out, "%s %s\n", mark, message)
}
