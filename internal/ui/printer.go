package ui

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 60

// Printer renders operator-facing launch output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) rule() {
	fmt.Fprintln(p.out, ruleStyle.Render(strings.Repeat("=", ruleWidth)))
}

// Banner prints the launch header with the job parameters.
func (p *Printer) Banner(title string, fields [][2]string) {
	p.rule()
	fmt.Fprintln(p.out, titleStyle.Render(title))
	p.rule()
	for _, f := range fields {
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-13s", f[0]+":")), f[1])
	}
	p.rule()
}

// Step prints a numbered pipeline step.
func (p *Printer) Step(i, total int, msg string) {
	fmt.Fprintf(p.out, "%s %s\n", stepStyle.Render(fmt.Sprintf("[%d/%d]", i, total)), msg)
}

// OK prints a confirmation line.
func (p *Printer) OK(msg string) {
	fmt.Fprintf(p.out, "  %s %s\n", okStyle.Render(checkMark), msg)
}

// Warn prints a non-fatal warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.out, "  %s %s\n", warningStyle.Render(warnMark), msg)
}

// Success prints the closing summary with follow-up guidance.
func (p *Printer) Success(fields [][2]string, guidance []string) {
	fmt.Fprintln(p.out)
	p.rule()
	fmt.Fprintln(p.out, okStyle.Render("Deployment completed successfully"))
	p.rule()
	for _, f := range fields {
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-13s", f[0]+":")), f[1])
	}
	for _, g := range guidance {
		fmt.Fprintln(p.out, g)
	}
	p.rule()
}
