// Package console renders agent output and reads user input on a terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	functionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Printer writes styled, prefixed messages.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, verbose: verbose}
}

func (p *Printer) Verbose() bool { return p.verbose }

func (p *Printer) Assistant(msg string) {
	p.write(assistantStyle, "Assistant: "+msg)
}

// Function prints tool progress; it is silent unless verbose.
func (p *Printer) Function(msg string) {
	if !p.verbose {
		return
	}
	p.write(functionStyle, "Function: "+msg)
}

func (p *Printer) Info(msg string) {
	p.write(infoStyle, msg)
}

func (p *Printer) Error(msg string) {
	p.write(errorStyle, msg)
}

func (p *Printer) write(style lipgloss.Style, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, style.Render(msg))
}

// LineReader prompts for and reads single lines of input.
type LineReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{in: bufio.NewReader(in), out: out, prompt: "You: "}
}

// ReadLine prints the prompt and returns the next line without its newline.
// io.EOF is returned only when no input remains at all.
func (r *LineReader) ReadLine() (string, error) {
	if r.out != nil {
		fmt.Fprint(r.out, r.prompt)
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ErrorText renders msg in the error style without printing it.
func ErrorText(msg string) string {
	return errorStyle.Render(msg)
}
