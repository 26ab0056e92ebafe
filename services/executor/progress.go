package executor

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// SEP frames each step in the progress output.
var SEP = strings.Repeat("-", 68)

// structDump pretty prints Sui values for progress output and debug logs.
var structDump = spew.ConfigState{
	Indent:                  "    ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// progress writes the step banners. Every write error is ignored: the output is observational.
type progress struct {
	w      io.Writer
	banner string
}

func (p *progress) start() {
	_, _ = fmt.Fprintf(p.w, "%s\n\n", SEP)
}

func (p *progress) begin(step string) {
	p.banner = "- " + step + "..."
	_, _ = fmt.Fprint(p.w, p.banner)
}

// done closes the banner line, padding it with dashes to the separator width.
func (p *progress) done() {
	const doneText = "done! "

	pad := len(SEP) - len(p.banner) - len(doneText)
	if pad < 0 {
		pad = 0
	}

	_, _ = fmt.Fprintf(p.w, "%s%s\n", doneText, strings.Repeat("-", pad))
}

// failed terminates an open banner so the error is printed on its own line.
func (p *progress) failed() {
	if p.banner != "" {
		_, _ = fmt.Fprintln(p.w)
		p.banner = ""
	}
}

func (p *progress) value(label string, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.w, "- %s:\n- %s\n", label, fmt.Sprintf(format, args...))
}

func (p *progress) end(last bool) {
	p.banner = ""

	if last {
		_, _ = fmt.Fprintln(p.w, SEP)
		return
	}

	_, _ = fmt.Fprintf(p.w, "%s\n\n", SEP)
}
