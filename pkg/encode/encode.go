// Package encode assembles raw instruction words for the register machine
// in pkg/machine. It turns opcodes and operands into the encoded words the
// dispatcher decodes, without a lexer, label table, or any other assembler
// machinery — the machine's external program format is a binary image, not
// a textual assembly language.
package encode

import "github.com/wordvm/um32/pkg/word"

// Opcode numbers, matching the dispatcher's decode table in pkg/machine.
const (
	OpCMOV = uint32(iota)
	OpSLOAD
	OpSSTORE
	OpADD
	OpMUL
	OpDIV
	OpNAND
	OpHALT
	OpMAP
	OpUNMAP
	OpOUT
	OpIN
	OpLOADP
	OpLOADV
)

// ThreeReg encodes a three-register-form instruction (opcodes 0-12): opcode
// in bits 28-31, A in bits 6-8, B in bits 3-5, C in bits 0-2.
func ThreeReg(op, a, b, c uint32) uint32 {
	w, err := word.Pack(0, 4, 28, op)
	if err != nil {
		panic(err) // op is always in range; a packing failure here is a bug
	}
	w, err = word.Pack(w, 3, 6, a)
	if err != nil {
		panic(err)
	}
	w, err = word.Pack(w, 3, 3, b)
	if err != nil {
		panic(err)
	}
	w, err = word.Pack(w, 3, 0, c)
	if err != nil {
		panic(err)
	}
	return w
}

// LoadImmediate encodes the load-immediate-form instruction (opcode 13): A
// in bits 25-27, a 25-bit unsigned immediate in bits 0-24.
func LoadImmediate(a, value uint32) uint32 {
	w, err := word.Pack(0, 4, 28, OpLOADV)
	if err != nil {
		panic(err)
	}
	w, err = word.Pack(w, 3, 25, a)
	if err != nil {
		panic(err)
	}
	w, err = word.Pack(w, 25, 0, value)
	if err != nil {
		panic(err)
	}
	return w
}
