// Package machine implements a small register machine: eight 32-bit
// registers, a program counter, a halted flag, a segment-backed heap, a
// loader that populates segment 0 from a binary image, and the
// fetch-decode-execute dispatcher that interprets the fourteen-opcode
// instruction set.
//
// Instruction format
//
// Every instruction is a single 32-bit word. Bits 28-31 select the opcode.
// Opcodes 0-12 use the three-register form: bits 6-8 select register A,
// bits 3-5 select register B, bits 0-2 select register C; bits 9-27 are
// unused and ignored on decode. Opcode 13 (LOADV) uses the load-immediate
// form: bits 25-27 select register A, and bits 0-24 hold a 25-bit unsigned
// immediate. Opcodes 14 and 15 are reserved.
//
//	 0  CMOV      R[A] <- R[B] if R[C] != 0
//	 1  SLOAD     R[A] <- M[R[B]][R[C]]
//	 2  SSTORE    M[R[A]][R[B]] <- R[C]
//	 3  ADD       R[A] <- R[B] + R[C] (mod 2^32)
//	 4  MUL       R[A] <- R[B] * R[C] (mod 2^32)
//	 5  DIV       R[A] <- R[B] / R[C] (unsigned)
//	 6  NAND      R[A] <- ^(R[B] & R[C])
//	 7  HALT      stop execution
//	 8  MAP       R[B] <- identifier of a freshly allocated segment of R[C] words
//	 9  UNMAP     deallocate segment R[C]
//	10  OUT       write byte R[C] mod 256 to stdout
//	11  IN        read one byte into R[C], or all-ones on end of input
//	12  LOADP     replace segment 0 with a duplicate of segment R[B] (unless R[B] == 0), then PC <- R[C]
//	13  LOADV     R[A] <- 25-bit immediate
//
// pkg/encode defines these same values as named constants.
package machine

import (
	"github.com/wordvm/um32/pkg/segment"
)

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 8

// Machine is a virtual machine instance: registers, program counter, halted
// flag, and the segment store backing its memory. A Machine must be created
// with New; the zero value is not valid because it has no segment store.
//
// Machine is not safe for concurrent use. Execution is strictly
// single-threaded: one fetch-decode-execute step runs to completion before
// the next begins, and neither IN nor OUT supports cancellation.
type Machine struct {
	Registers [NumRegisters]uint32
	PC        uint32
	Halted    bool
	Mem       *segment.Store
}

// New returns a freshly constructed, empty machine: all registers zero, PC
// zero, not halted, and an empty segment store.
func New() *Machine {
	return &Machine{Mem: segment.New()}
}
