// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mos describes the NMOS 6502 instruction set: every legal
// (mnemonic, addressing mode) pair together with its opcode byte, its
// encoded length, and its base cycle count. The table is built once at
// init time and never mutated.
package mos

// A Mnemonic is a symbolic 6502 instruction name.
type Mnemonic byte

// All NMOS 6502 mnemonics.
const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	numMnemonics
)

var mnemonicName = [numMnemonics]string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
}

// String returns the canonical upper-case name of the mnemonic.
func (m Mnemonic) String() string {
	if m >= numMnemonics {
		return "???"
	}
	return mnemonicName[m]
}

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes.
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	ACC             // Accumulator (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y

	numModes
)

var modeName = [numModes]string{
	"IMM", "IMP", "ACC", "REL", "ZPG", "ZPX", "ZPY",
	"ABS", "ABX", "ABY", "IND", "IDX", "IDY",
}

func (m Mode) String() string {
	if m >= numModes {
		return "???"
	}
	return modeName[m]
}

// An Instruction describes one legal (mnemonic, mode) pair of the NMOS
// 6502 instruction set.
type Instruction struct {
	Mnemonic Mnemonic // symbolic instruction name
	Mode     Mode     // addressing mode
	Opcode   byte     // opcode byte value
	Length   byte     // encoded length including the opcode byte
	Cycles   byte     // base cycle count
}

// Opcode data for one (mnemonic, mode) pair.
type opcodeData struct {
	mn     Mnemonic
	mode   Mode
	opcode byte
	length byte
	cycles byte
}

// All valid (mnemonic, mode) pairs.
var data = []opcodeData{
	{LDA, IMM, 0xa9, 2, 2},
	{LDA, ZPG, 0xa5, 2, 3},
	{LDA, ZPX, 0xb5, 2, 4},
	{LDA, ABS, 0xad, 3, 4},
	{LDA, ABX, 0xbd, 3, 4},
	{LDA, ABY, 0xb9, 3, 4},
	{LDA, IDX, 0xa1, 2, 6},
	{LDA, IDY, 0xb1, 2, 5},

	{LDX, IMM, 0xa2, 2, 2},
	{LDX, ZPG, 0xa6, 2, 3},
	{LDX, ZPY, 0xb6, 2, 4},
	{LDX, ABS, 0xae, 3, 4},
	{LDX, ABY, 0xbe, 3, 4},

	{LDY, IMM, 0xa0, 2, 2},
	{LDY, ZPG, 0xa4, 2, 3},
	{LDY, ZPX, 0xb4, 2, 4},
	{LDY, ABS, 0xac, 3, 4},
	{LDY, ABX, 0xbc, 3, 4},

	{STA, ZPG, 0x85, 2, 3},
	{STA, ZPX, 0x95, 2, 4},
	{STA, ABS, 0x8d, 3, 4},
	{STA, ABX, 0x9d, 3, 5},
	{STA, ABY, 0x99, 3, 5},
	{STA, IDX, 0x81, 2, 6},
	{STA, IDY, 0x91, 2, 6},

	{STX, ZPG, 0x86, 2, 3},
	{STX, ZPY, 0x96, 2, 4},
	{STX, ABS, 0x8e, 3, 4},

	{STY, ZPG, 0x84, 2, 3},
	{STY, ZPX, 0x94, 2, 4},
	{STY, ABS, 0x8c, 3, 4},

	{ADC, IMM, 0x69, 2, 2},
	{ADC, ZPG, 0x65, 2, 3},
	{ADC, ZPX, 0x75, 2, 4},
	{ADC, ABS, 0x6d, 3, 4},
	{ADC, ABX, 0x7d, 3, 4},
	{ADC, ABY, 0x79, 3, 4},
	{ADC, IDX, 0x61, 2, 6},
	{ADC, IDY, 0x71, 2, 5},

	{SBC, IMM, 0xe9, 2, 2},
	{SBC, ZPG, 0xe5, 2, 3},
	{SBC, ZPX, 0xf5, 2, 4},
	{SBC, ABS, 0xed, 3, 4},
	{SBC, ABX, 0xfd, 3, 4},
	{SBC, ABY, 0xf9, 3, 4},
	{SBC, IDX, 0xe1, 2, 6},
	{SBC, IDY, 0xf1, 2, 5},

	{CMP, IMM, 0xc9, 2, 2},
	{CMP, ZPG, 0xc5, 2, 3},
	{CMP, ZPX, 0xd5, 2, 4},
	{CMP, ABS, 0xcd, 3, 4},
	{CMP, ABX, 0xdd, 3, 4},
	{CMP, ABY, 0xd9, 3, 4},
	{CMP, IDX, 0xc1, 2, 6},
	{CMP, IDY, 0xd1, 2, 5},

	{CPX, IMM, 0xe0, 2, 2},
	{CPX, ZPG, 0xe4, 2, 3},
	{CPX, ABS, 0xec, 3, 4},

	{CPY, IMM, 0xc0, 2, 2},
	{CPY, ZPG, 0xc4, 2, 3},
	{CPY, ABS, 0xcc, 3, 4},

	{BIT, ZPG, 0x24, 2, 3},
	{BIT, ABS, 0x2c, 3, 4},

	{CLC, IMP, 0x18, 1, 2},
	{SEC, IMP, 0x38, 1, 2},
	{CLI, IMP, 0x58, 1, 2},
	{SEI, IMP, 0x78, 1, 2},
	{CLD, IMP, 0xd8, 1, 2},
	{SED, IMP, 0xf8, 1, 2},
	{CLV, IMP, 0xb8, 1, 2},

	{BCC, REL, 0x90, 2, 2},
	{BCS, REL, 0xb0, 2, 2},
	{BEQ, REL, 0xf0, 2, 2},
	{BNE, REL, 0xd0, 2, 2},
	{BMI, REL, 0x30, 2, 2},
	{BPL, REL, 0x10, 2, 2},
	{BVC, REL, 0x50, 2, 2},
	{BVS, REL, 0x70, 2, 2},

	{BRK, IMP, 0x00, 1, 7},

	{AND, IMM, 0x29, 2, 2},
	{AND, ZPG, 0x25, 2, 3},
	{AND, ZPX, 0x35, 2, 4},
	{AND, ABS, 0x2d, 3, 4},
	{AND, ABX, 0x3d, 3, 4},
	{AND, ABY, 0x39, 3, 4},
	{AND, IDX, 0x21, 2, 6},
	{AND, IDY, 0x31, 2, 5},

	{ORA, IMM, 0x09, 2, 2},
	{ORA, ZPG, 0x05, 2, 3},
	{ORA, ZPX, 0x15, 2, 4},
	{ORA, ABS, 0x0d, 3, 4},
	{ORA, ABX, 0x1d, 3, 4},
	{ORA, ABY, 0x19, 3, 4},
	{ORA, IDX, 0x01, 2, 6},
	{ORA, IDY, 0x11, 2, 5},

	{EOR, IMM, 0x49, 2, 2},
	{EOR, ZPG, 0x45, 2, 3},
	{EOR, ZPX, 0x55, 2, 4},
	{EOR, ABS, 0x4d, 3, 4},
	{EOR, ABX, 0x5d, 3, 4},
	{EOR, ABY, 0x59, 3, 4},
	{EOR, IDX, 0x41, 2, 6},
	{EOR, IDY, 0x51, 2, 5},

	{INC, ZPG, 0xe6, 2, 5},
	{INC, ZPX, 0xf6, 2, 6},
	{INC, ABS, 0xee, 3, 6},
	{INC, ABX, 0xfe, 3, 7},

	{DEC, ZPG, 0xc6, 2, 5},
	{DEC, ZPX, 0xd6, 2, 6},
	{DEC, ABS, 0xce, 3, 6},
	{DEC, ABX, 0xde, 3, 7},

	{INX, IMP, 0xe8, 1, 2},
	{INY, IMP, 0xc8, 1, 2},

	{DEX, IMP, 0xca, 1, 2},
	{DEY, IMP, 0x88, 1, 2},

	{JMP, ABS, 0x4c, 3, 3},
	{JMP, IND, 0x6c, 3, 5},

	{JSR, ABS, 0x20, 3, 6},
	{RTS, IMP, 0x60, 1, 6},

	{RTI, IMP, 0x40, 1, 6},

	{NOP, IMP, 0xea, 1, 2},

	{TAX, IMP, 0xaa, 1, 2},
	{TXA, IMP, 0x8a, 1, 2},
	{TAY, IMP, 0xa8, 1, 2},
	{TYA, IMP, 0x98, 1, 2},
	{TXS, IMP, 0x9a, 1, 2},
	{TSX, IMP, 0xba, 1, 2},

	{PHA, IMP, 0x48, 1, 3},
	{PLA, IMP, 0x68, 1, 4},
	{PHP, IMP, 0x08, 1, 3},
	{PLP, IMP, 0x28, 1, 4},

	{ASL, ACC, 0x0a, 1, 2},
	{ASL, ZPG, 0x06, 2, 5},
	{ASL, ZPX, 0x16, 2, 6},
	{ASL, ABS, 0x0e, 3, 6},
	{ASL, ABX, 0x1e, 3, 7},

	{LSR, ACC, 0x4a, 1, 2},
	{LSR, ZPG, 0x46, 2, 5},
	{LSR, ZPX, 0x56, 2, 6},
	{LSR, ABS, 0x4e, 3, 6},
	{LSR, ABX, 0x5e, 3, 7},

	{ROL, ACC, 0x2a, 1, 2},
	{ROL, ZPG, 0x26, 2, 5},
	{ROL, ZPX, 0x36, 2, 6},
	{ROL, ABS, 0x2e, 3, 6},
	{ROL, ABX, 0x3e, 3, 7},

	{ROR, ACC, 0x6a, 1, 2},
	{ROR, ZPG, 0x66, 2, 5},
	{ROR, ZPX, 0x76, 2, 6},
	{ROR, ABS, 0x6e, 3, 6},
	{ROR, ABX, 0x7e, 3, 7},
}

type instKey struct {
	mn   Mnemonic
	mode Mode
}

var (
	instructions []Instruction
	table        map[instKey]*Instruction
	variants     [numMnemonics][]*Instruction
	byName       map[string]Mnemonic
)

// Build the instruction tables.
func init() {
	instructions = make([]Instruction, len(data))
	table = make(map[instKey]*Instruction, len(data))
	byName = make(map[string]Mnemonic, numMnemonics)

	for i, d := range data {
		inst := &instructions[i]
		inst.Mnemonic = d.mn
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = d.length
		inst.Cycles = d.cycles

		key := instKey{d.mn, d.mode}
		if _, found := table[key]; found {
			panic("duplicate instruction table entry: " + d.mn.String() + " " + d.mode.String())
		}
		table[key] = inst
		variants[d.mn] = append(variants[d.mn], inst)
	}

	for m := Mnemonic(0); m < numMnemonics; m++ {
		byName[mnemonicName[m]] = m
	}
}

// Lookup returns the instruction descriptor for the requested mnemonic
// and addressing mode. It returns an UnknownInstructionError if the pair
// is not part of the instruction set.
func Lookup(mn Mnemonic, mode Mode) (*Instruction, error) {
	if inst, ok := table[instKey{mn, mode}]; ok {
		return inst, nil
	}
	return nil, &UnknownInstructionError{Mnemonic: mn, Mode: mode}
}

// Variants returns all instruction descriptors for the mnemonic, one per
// legal addressing mode.
func Variants(mn Mnemonic) []*Instruction {
	if mn >= numMnemonics {
		return nil
	}
	return variants[mn]
}

// ByName returns the mnemonic with the requested name. Matching is
// case-sensitive on the canonical upper-case form.
func ByName(name string) (Mnemonic, bool) {
	mn, ok := byName[name]
	return mn, ok
}

// Mnemonics returns every mnemonic in the instruction set.
func Mnemonics() []Mnemonic {
	all := make([]Mnemonic, numMnemonics)
	for m := Mnemonic(0); m < numMnemonics; m++ {
		all[m] = m
	}
	return all
}

// Instructions returns every (mnemonic, mode) descriptor in the set.
func Instructions() []Instruction {
	return instructions
}

// IsBranch reports whether the mnemonic is a relative-mode branch.
func (m Mnemonic) IsBranch() bool {
	_, ok := table[instKey{m, REL}]
	return ok
}
