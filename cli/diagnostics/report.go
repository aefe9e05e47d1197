package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASS"
	case StatusFailed:
		return "FAIL"
	case StatusSkipped:
		return "SKIP"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of one check. Details is set on success, Err on failure,
// Reason when the check was skipped.
type Result struct {
	Phase   string
	Name    string
	Status  Status
	Elapsed time.Duration
	Details any
	Err     error
	Reason  string
}

type Report struct {
	Started  time.Time
	Finished time.Time
	Results  []Result
}

// Result returns the outcome of the check called name.
func (r *Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow, color.Bold)
	headColor = color.New(color.FgCyan, color.Bold)
)

const ruleWidth = 70

func statusColor(s Status) *color.Color {
	switch s {
	case StatusPassed:
		return passColor
	case StatusFailed:
		return failColor
	default:
		return skipColor
	}
}

type printer struct {
	out io.Writer
}

func (p printer) rule() {
	fmt.Fprintln(p.out, strings.Repeat("=", ruleWidth))
}

func (p printer) phase(title string) {
	fmt.Fprintln(p.out)
	headColor.Fprintln(p.out, title)
}

func (p printer) running(name string) {
	fmt.Fprintf(p.out, "Running test: %s...\n", name)
}

func (p printer) result(res Result) {
	statusColor(res.Status).Fprintf(p.out, "[%s]", res.Status)
	if res.Status == StatusSkipped {
		fmt.Fprintf(p.out, " %s\n", res.Name)
		fmt.Fprintf(p.out, "   %s\n", res.Reason)
		return
	}

	fmt.Fprintf(p.out, " %s [%dms]\n", res.Name, res.Elapsed.Milliseconds())
	switch {
	case res.Err != nil:
		fmt.Fprintf(p.out, "   %s\n", res.Err)
	case res.Details != nil:
		p.details(res.Details)
	}
}

func (p printer) details(v any) {
	if s, ok := v.(string); ok {
		fmt.Fprintf(p.out, "   %s\n", s)
		return
	}
	data, err := json.MarshalIndent(v, "   ", "  ")
	if err != nil {
		fmt.Fprintf(p.out, "   %v\n", v)
		return
	}
	fmt.Fprintf(p.out, "   %s\n", data)
}

func (p printer) summary(r *Report) {
	fmt.Fprintln(p.out)
	p.rule()
	fmt.Fprintln(p.out, "Diagnostics completed!")
	fmt.Fprintf(p.out, "%s %d  %s %d  %s %d  (%s)\n",
		passColor.Sprint("Passed:"), r.Count(StatusPassed),
		failColor.Sprint("Failed:"), r.Count(StatusFailed),
		skipColor.Sprint("Skipped:"), r.Count(StatusSkipped),
		r.Finished.Sub(r.Started).Round(time.Millisecond))
	p.rule()
}
