package codegen

import (
	"io"
	"strings"
)

// Append-only destination for generated instruction lines.  Lines are
// written in program order.
type Sink interface {
	WriteLine(line string) error
}

// Writes each line tab-indented and newline-terminated.  The first write
// error is sticky; later writes are dropped and return the same error.
type WriterSink struct {
	writer io.Writer
	err    error
}

var _ Sink = &WriterSink{}

func NewWriterSink(writer io.Writer) *WriterSink {
	return &WriterSink{
		writer: writer,
	}
}

func (sink *WriterSink) WriteLine(line string) error {
	if sink.err != nil {
		return sink.err
	}

	_, sink.err = io.WriteString(sink.writer, "\t"+line+"\n")
	return sink.err
}

func (sink *WriterSink) Err() error {
	return sink.err
}

type LineBuffer struct {
	Lines []string
}

var _ Sink = &LineBuffer{}

func (buffer *LineBuffer) WriteLine(line string) error {
	buffer.Lines = append(buffer.Lines, line)
	return nil
}

func (buffer *LineBuffer) String() string {
	if len(buffer.Lines) == 0 {
		return ""
	}
	return strings.Join(buffer.Lines, "\n") + "\n"
}
