// internal/platform/ui/progress.go
package ui

import (
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Progress muestra el avance de una operación larga (deep scan).
type Progress interface {
	Start(msg string)
	Success(msg string)
	Fail(msg string)
}

// NewProgress retorna un spinner pterm sobre w si w es una terminal, o un
// Progress vacío (pipes, archivos, buffers de test).
func NewProgress(w io.Writer) Progress {
	if !IsTerminal(w) {
		return NoopProgress{}
	}
	return &SpinnerProgress{writer: w}
}

// IsTerminal reporta si w es un *os.File conectado a una terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SpinnerProgress implementa Progress con pterm.DefaultSpinner.
type SpinnerProgress struct {
	mu      sync.Mutex
	writer  io.Writer
	spinner *pterm.SpinnerPrinter
}

// Start inicia el spinner; si ya hay uno activo solo cambia el texto.
func (p *SpinnerProgress) Start(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.spinner != nil {
		p.spinner.UpdateText(msg)
		return
	}
	spinner, err := pterm.DefaultSpinner.
		WithWriter(p.writer).
		WithRemoveWhenDone(false).
		Start(msg)
	if err != nil {
		return
	}
	p.spinner = spinner
}

// Success detiene el spinner con estado exitoso.
func (p *SpinnerProgress) Success(msg string) {
	p.stop(func(s *pterm.SpinnerPrinter) { s.Success(msg) })
}

// Fail detiene el spinner con estado fallido.
func (p *SpinnerProgress) Fail(msg string) {
	p.stop(func(s *pterm.SpinnerPrinter) { s.Fail(msg) })
}

func (p *SpinnerProgress) stop(finish func(*pterm.SpinnerPrinter)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.spinner == nil {
		return
	}
	finish(p.spinner)
	p.spinner = nil
}

// NoopProgress no produce salida (modo JSON, pipes).
type NoopProgress struct{}

func (NoopProgress) Start(string)   {}
func (NoopProgress) Success(string) {}
func (NoopProgress) Fail(string)    {}
