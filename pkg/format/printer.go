// Package format renders parsed minisql programs as canonical SQL.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/minisql/pkg/token"
)

// Printer accumulates formatted output.
type Printer struct {
	output *bytes.Buffer
}

func newPrinter() *Printer {
	return &Printer{output: &bytes.Buffer{}}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords in upper case, separated by spaces.
func (p *Printer) kw(keywords ...string) {
	for i, k := range keywords {
		if i > 0 {
			p.space()
		}
		p.write(strings.ToUpper(k))
	}
}

// token prints a literal token so that it lexes back to an equal token.
func (p *Printer) token(t token.Token) {
	switch t.Kind {
	case token.Identifier:
		p.write(Ident(t.Value))
	case token.String:
		p.write(Quote(t.Value))
	case token.Keyword:
		p.write(strings.ToUpper(t.Value))
	default:
		p.write(t.Value)
	}
}

// formatList prints count items separated by ", ".
func (p *Printer) formatList(count int, format func(i int)) {
	for i := 0; i < count; i++ {
		if i > 0 {
			p.write(", ")
		}
		format(i)
	}
}
