package presentation

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Message styles for verb outcomes.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // aqua
	UsageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatRecords formats a list of records as JSON
func (f *Formatter) FormatRecords(records []RecordDTO) error {
	if records == nil {
		records = []RecordDTO{}
	}
	return f.encode(records)
}

// FormatRecord formats a single record as JSON
func (f *Formatter) FormatRecord(record RecordDTO) error {
	return f.encode(record)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Success writes a success message.
func (f *Formatter) Success(msg string) {
	f.line(SuccessStyle, msg)
}

// Usage writes a usage hint.
func (f *Formatter) Usage(msg string) {
	f.line(UsageStyle, msg)
}

// Failure writes an error message.
func (f *Formatter) Failure(msg string) {
	f.line(ErrorStyle, msg)
}

func (f *Formatter) line(style lipgloss.Style, msg string) {
	_, _ = fmt.Fprintln(f.writer, style.Render(msg))
}
