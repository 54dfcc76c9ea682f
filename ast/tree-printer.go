package ast

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

const (
	indent = "  "
)

func TreeString(node Node, indent string) string {
	buffer := &bytes.Buffer{}
	_ = PrintTree(buffer, node, indent)
	return buffer.String()
}

func PrintTree(output io.Writer, node Node, indent string) error {
	printer := &treePrinter{
		indent:     indent,
		labelStack: []string{},
		writer:     output,
	}
	node.Walk(printer)
	return printer.err
}

type treePrinter struct {
	indent     string
	labelStack []string
	writer     io.Writer
	err        error
}

func (printer *treePrinter) write(format string, args ...interface{}) {
	if printer.err != nil {
		return
	}

	if len(args) == 0 {
		_, printer.err = printer.writer.Write([]byte(format))
	} else {
		_, printer.err = fmt.Fprintf(printer.writer, format, args...)
	}
}

func (printer *treePrinter) writeLabel() {
	label := ""
	if len(printer.labelStack) > 0 {
		label = printer.labelStack[len(printer.labelStack)-1]
		printer.labelStack = printer.labelStack[:len(printer.labelStack)-1]
	}

	if len(label) > 0 {
		printer.write("\n")
		printer.write(printer.indent)
		printer.write(label)
	} else {
		printer.write(printer.indent)
	}
}

func (printer *treePrinter) endNode() {
	printer.indent = printer.indent[:len(printer.indent)-len(indent)]
	printer.write("\n")
	printer.write(printer.indent)
	printer.write("]")
}

func (printer *treePrinter) push(labels ...string) {
	printer.indent += indent

	for len(labels) > 0 {
		last := labels[len(labels)-1]
		labels = labels[:len(labels)-1]

		printer.labelStack = append(printer.labelStack, last)
	}
}

func (printer *treePrinter) Enter(n Node) {
	printer.writeLabel()

	switch node := n.(type) {
	case *IntLiteral:
		printer.write(
			"[IntLiteral: Value=%d Registers=%d]",
			node.Value,
			node.RegisterRequirement())
	case *FloatLiteral:
		printer.write(
			"[FloatLiteral: Value=%e Registers=%d]",
			node.Value,
			node.RegisterRequirement())
	case *StringLiteral:
		printer.write(
			"[StringLiteral: Value=%q Registers=%d]",
			node.Value,
			node.RegisterRequirement())
	case *Identifier:
		printer.write(
			"[Identifier: Name=%s Registers=%d]",
			node.Name,
			node.RegisterRequirement())
	case *BinaryExpression:
		printer.write(
			"[BinaryExpression: Operator=%s Registers=%d Loc=%s",
			node.Operator,
			node.RegisterRequirement(),
			node.Loc())
		printer.push("Left=", "Right=")

	default:
		printer.write("unhandled node: %v", n)
	}
}

func (printer *treePrinter) Exit(n Node) {
	switch n.(type) {
	case *BinaryExpression:
		printer.endNode()
	}
}

// Returns the fully parenthesized source form of the expression, e.g.,
// "((a + b) * 2)".
func InfixString(expr Expression) string {
	buffer := &bytes.Buffer{}
	writeInfix(buffer, expr)
	return buffer.String()
}

func writeInfix(buffer *bytes.Buffer, expr Expression) {
	switch node := expr.(type) {
	case *IntLiteral:
		buffer.WriteString(strconv.FormatInt(node.Value, 10))
	case *FloatLiteral:
		buffer.WriteString(strconv.FormatFloat(node.Value, 'g', -1, 64))
	case *StringLiteral:
		buffer.WriteString(strconv.Quote(node.Value))
	case *Identifier:
		buffer.WriteString(node.Name)
	case *BinaryExpression:
		buffer.WriteString("(")
		writeInfix(buffer, node.Left)
		buffer.WriteString(" ")
		buffer.WriteString(string(node.Operator))
		buffer.WriteString(" ")
		writeInfix(buffer, node.Right)
		buffer.WriteString(")")
	case nil:
		buffer.WriteString("<nil>")
	default:
		fmt.Fprintf(buffer, "<%T>", expr)
	}
}
