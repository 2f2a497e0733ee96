package machine

import (
	"errors"
	"fmt"
	"io"

	"github.com/wordvm/um32/pkg/encode"
	"github.com/wordvm/um32/pkg/word"
)

// The following errors may be returned by Step. They describe conditions
// the guest program's ISA leaves undefined (division by zero, a reserved
// opcode); out-of-range segment access and bad unmap targets surface as the
// pkg/segment sentinel errors instead. Step does not attempt to recover
// from any of them — the simplest conforming response is to abort the run
// with a diagnostic, which is what callers of Run do with the error it
// returns.
var (
	// ErrReservedOpcode indicates that the decoded opcode was 14 or 15.
	ErrReservedOpcode = errors.New("machine: reserved opcode")

	// ErrDivideByZero indicates a DIV instruction with R[C] == 0.
	ErrDivideByZero = errors.New("machine: division by zero")
)

// Step fetches, decodes, and executes the single instruction addressed by
// the program counter. It must not be called once m.Halted is true.
func (m *Machine) Step(stdin io.Reader, stdout io.Writer) error {
	instr, err := m.Mem.Read(0, m.PC)
	if err != nil {
		return fmt.Errorf("machine: fetch at pc=%d: %w", m.PC, err)
	}
	m.PC++ // wraps at 2^32 via uint32 overflow; the guest must not rely on it

	opcode := word.Unpack(instr, 4, 28)

	if opcode == encode.OpLOADV {
		a := word.Unpack(instr, 3, 25)
		imm := word.Unpack(instr, 25, 0)
		m.Registers[a] = imm
		return nil
	}
	if opcode >= 14 {
		return fmt.Errorf("%w: %d", ErrReservedOpcode, opcode)
	}

	a := word.Unpack(instr, 3, 6)
	b := word.Unpack(instr, 3, 3)
	c := word.Unpack(instr, 3, 0)

	switch opcode {
	case encode.OpCMOV:
		if m.Registers[c] != 0 {
			m.Registers[a] = m.Registers[b]
		}
	case encode.OpSLOAD:
		v, err := m.Mem.Read(m.Registers[b], m.Registers[c])
		if err != nil {
			return fmt.Errorf("machine: SLOAD: %w", err)
		}
		m.Registers[a] = v
	case encode.OpSSTORE:
		if err := m.Mem.Write(m.Registers[a], m.Registers[b], m.Registers[c]); err != nil {
			return fmt.Errorf("machine: SSTORE: %w", err)
		}
	case encode.OpADD:
		m.Registers[a] = m.Registers[b] + m.Registers[c]
	case encode.OpMUL:
		m.Registers[a] = m.Registers[b] * m.Registers[c]
	case encode.OpDIV:
		if m.Registers[c] == 0 {
			return ErrDivideByZero
		}
		m.Registers[a] = m.Registers[b] / m.Registers[c]
	case encode.OpNAND:
		m.Registers[a] = ^(m.Registers[b] & m.Registers[c])
	case encode.OpHALT:
		m.Halted = true
	case encode.OpMAP:
		m.Registers[b] = m.Mem.Allocate(m.Registers[c])
	case encode.OpUNMAP:
		if err := m.Mem.Deallocate(m.Registers[c]); err != nil {
			return fmt.Errorf("machine: UNMAP: %w", err)
		}
	case encode.OpOUT:
		if _, err := stdout.Write([]byte{byte(m.Registers[c] % 256)}); err != nil {
			return fmt.Errorf("machine: OUT: %w", err)
		}
	case encode.OpIN:
		var buf [1]byte
		if _, err := io.ReadFull(stdin, buf[:]); err != nil {
			if errors.Is(err, io.EOF) {
				m.Registers[c] = 0xFFFFFFFF
			} else {
				return fmt.Errorf("machine: IN: %w", err)
			}
		} else {
			m.Registers[c] = uint32(buf[0])
		}
	case encode.OpLOADP:
		// R[B] == 0 is a branch within the currently executing segment and
		// must not allocate or copy: aliasing segment 0 into itself would be
		// a no-op anyway, and tight loops depend on this path staying cheap.
		if m.Registers[b] != 0 {
			dup, err := m.Mem.Duplicate(m.Registers[b])
			if err != nil {
				return fmt.Errorf("machine: LOADP: %w", err)
			}
			if err := m.Mem.Replace(0, dup); err != nil {
				return fmt.Errorf("machine: LOADP: %w", err)
			}
		}
		m.PC = m.Registers[c]
	}
	return nil
}

// Run steps the machine until it halts or a step returns an error.
func (m *Machine) Run(stdin io.Reader, stdout io.Writer) error {
	for !m.Halted {
		if err := m.Step(stdin, stdout); err != nil {
			return err
		}
	}
	return nil
}
