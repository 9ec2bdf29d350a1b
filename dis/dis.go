// Package dis supports analysis of parsed tape programs by disassembling
// them into a listing of instructions with their jump targets and source
// positions.
package dis

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/deepnoodle-ai/tape/bytecode"
	"github.com/deepnoodle-ai/tape/op"
)

// Instruction represents a single program instruction and its annotations.
type Instruction struct {
	Offset   int     `json:"offset"`
	Name     string  `json:"name"`
	Opcode   op.Code `json:"opcode"`
	Symbol   string  `json:"symbol,omitempty"`
	Operand  *int    `json:"operand,omitempty"`
	Target   *int    `json:"target,omitempty"`
	Location string  `json:"location,omitempty"`
}

// Disassemble returns an annotated listing of the given program. Jump
// targets are the instruction that runs next when the jump is taken.
func Disassemble(program *bytecode.Program) []Instruction {
	instructions := make([]Instruction, 0, program.InstructionCount())
	for i := 0; i < program.InstructionCount(); i++ {
		instr := program.InstructionAt(i)
		info := op.GetInfo(instr.Op)
		entry := Instruction{
			Offset: i,
			Name:   info.Name,
			Opcode: instr.Op,
		}
		if info.Symbol != 0 {
			entry.Symbol = string(info.Symbol)
		}
		if info.HasOffset {
			operand := instr.Offset
			target := i + instr.Offset + 1
			if instr.Op == op.JumpIfNonZero {
				target = i - instr.Offset
			}
			entry.Operand = &operand
			entry.Target = &target
		}
		if loc := program.LocationAt(i); !loc.IsZero() {
			entry.Location = loc.String()
		}
		instructions = append(instructions, entry)
	}
	return instructions
}

var (
	colorJump     = color.New(color.FgMagenta).SprintFunc()
	colorIO       = color.New(color.FgGreen).SprintFunc()
	colorEnd      = color.New(color.FgHiBlack).SprintFunc()
	colorTarget   = color.New(color.FgHiCyan).SprintFunc()
	colorLocation = color.New(color.FgYellow).SprintFunc()
	bold          = color.New(color.Bold).SprintFunc()
)

// Print a table of the given instructions to the given writer. Colors follow
// color.NoColor.
func Print(instructions []Instruction, writer io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(writer)
	tw.SetStyle(table.StyleDefault)
	tw.AppendHeader(table.Row{"OFFSET", "OPCODE", "SYMBOL", "OPERAND", "INFO", "LOCATION"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignLeft},
		{Number: 6, Align: text.AlignLeft},
	})
	for _, instr := range instructions {
		var operand, info string
		if instr.Operand != nil {
			operand = fmt.Sprintf("%d", *instr.Operand)
		}
		if instr.Target != nil {
			info = colorTarget(fmt.Sprintf("-> %d", *instr.Target))
		}
		tw.AppendRow(table.Row{
			instr.Offset,
			paintName(instr),
			instr.Symbol,
			operand,
			info,
			colorLocation(instr.Location),
		})
	}
	tw.Render()
}

func paintName(instr Instruction) string {
	switch instr.Opcode {
	case op.JumpIfZero, op.JumpIfNonZero:
		return colorJump(instr.Name)
	case op.Input, op.Output:
		return colorIO(instr.Name)
	case op.End:
		return colorEnd(instr.Name)
	default:
		return bold(instr.Name)
	}
}
