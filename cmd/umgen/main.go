// Command umgen writes a fixed table of named test programs, each paired
// with its expected stdin and stdout fixtures, to an output directory as
// binary images — one test at a time, one directory of per-test files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	getopt "github.com/pborman/getopt/v2"

	"github.com/wordvm/um32/pkg/encode"
	"github.com/wordvm/um32/pkg/word"
)

type testCase struct {
	name     string
	input    string
	expected string
	build    func() []uint32
}

func lv(reg, val uint32) uint32   { return encode.LoadImmediate(reg, val) }
func three(op, a, b, c uint32) uint32 { return encode.ThreeReg(op, a, b, c) }
func out(c uint32) uint32             { return three(encode.OpOUT, 0, 0, c) }
func in(c uint32) uint32              { return three(encode.OpIN, 0, 0, c) }
func halt() uint32                    { return three(encode.OpHALT, 0, 0, 0) }
func add(a, b, c uint32) uint32       { return three(encode.OpADD, a, b, c) }
func mul(a, b, c uint32) uint32       { return three(encode.OpMUL, a, b, c) }
func div(a, b, c uint32) uint32       { return three(encode.OpDIV, a, b, c) }
func nand(a, b, c uint32) uint32      { return three(encode.OpNAND, a, b, c) }
func mov(a, b, c uint32) uint32       { return three(encode.OpCMOV, a, b, c) }
func mp(b, c uint32) uint32           { return three(encode.OpMAP, 0, b, c) }
func unmap(c uint32) uint32           { return three(encode.OpUNMAP, 0, 0, c) }
func sstore(a, b, c uint32) uint32    { return three(encode.OpSSTORE, a, b, c) }
func sload(a, b, c uint32) uint32     { return three(encode.OpSLOAD, a, b, c) }
func prog(b, c uint32) uint32         { return three(encode.OpLOADP, 0, b, c) }

var helloChars = []uint32{72, 101, 108, 108, 111, 32, 87, 111, 114, 108, 100, 33, 10}

func buildHalt() []uint32 { return []uint32{halt()} }

func buildPrintSix() []uint32 {
	return []uint32{lv(1, 48), lv(2, 6), add(3, 1, 2), out(3), halt()}
}

func buildHello() []uint32 {
	var instrs []uint32
	for _, c := range helloChars {
		instrs = append(instrs, lv(0, c), out(0))
	}
	return append(instrs, halt())
}

func buildAddLimit() []uint32 {
	return []uint32{
		lv(1, 1<<24), lv(2, 1<<8), mul(0, 1, 2),
		lv(3, 65), add(1, 3, 0), out(1), halt(),
	}
}

func buildDiv() []uint32 {
	return []uint32{
		lv(2, 570), lv(3, 10), div(1, 2, 3), out(1),
		lv(2, 573), lv(3, 10), div(1, 2, 3), out(1),
		lv(1, 1), lv(2, 54), div(1, 2, 1), out(1),
		lv(1, 0), lv(2, 48), lv(3, 49893), div(1, 1, 3), add(1, 1, 2), out(1),
		halt(),
	}
}

func buildMult() []uint32 {
	return []uint32{
		lv(0, 48), lv(1, 2), lv(2, 3), mul(3, 1, 2), add(3, 3, 0), out(3),
		lv(1, 1<<24), lv(2, 1<<14), mul(0, 1, 2),
		lv(2, 1), add(0, 0, 2), lv(4, 64), mul(0, 0, 4), out(0),
		lv(1, 67649), lv(2, 63489), mul(0, 1, 2), out(0),
		halt(),
	}
}

func buildNand() []uint32 {
	return []uint32{
		lv(2, 65), lv(3, 65), nand(1, 2, 3), nand(1, 1, 1), out(1),
		lv(2, 126), lv(3, 67), nand(1, 2, 3), nand(1, 1, 1), out(1),
		halt(),
	}
}

func buildMov() []uint32 {
	return []uint32{
		lv(1, 65), lv(2, 66), lv(3, 0), mov(1, 2, 3), out(1),
		lv(4, 7), mov(1, 2, 4), out(1),
		halt(),
	}
}

func buildLoadProg() []uint32 {
	return []uint32{
		lv(1, 0), lv(2, 4), prog(1, 2),
		halt(),
		lv(3, 65), out(3), halt(),
	}
}

func buildDivZero() []uint32 {
	return []uint32{lv(1, 200), div(0, 1, 2), out(0), halt()}
}

func buildMapUnmap() []uint32 {
	return []uint32{
		lv(1, 1), lv(6, 48), lv(7, 32),
		mp(2, 1), mp(3, 1), mp(4, 1),
		add(5, 2, 6), out(5), out(7),
		add(5, 3, 6), out(5), out(7),
		add(5, 4, 6), out(5), out(7),
		unmap(3), unmap(2),
		mp(2, 1), mp(3, 1), mp(4, 1),
		add(5, 2, 6), out(5), out(7),
		add(5, 3, 6), out(5), out(7),
		add(5, 4, 6), out(5),
		halt(),
	}
}

func buildLoadStore() []uint32 {
	instrs := []uint32{
		lv(0, uint32(len(helloChars))), mp(1, 0), lv(2, 0), lv(3, 1),
	}
	for _, c := range helloChars {
		instrs = append(instrs, lv(0, c), sstore(1, 2, 0), add(2, 2, 3))
	}
	instrs = append(instrs, lv(2, 0))
	for range helloChars {
		instrs = append(instrs, sload(0, 1, 2), out(0), add(2, 2, 3))
	}
	return append(instrs, halt())
}

func buildUnmapFail() []uint32 {
	return []uint32{
		mp(1, 0), unmap(1), lv(2, 48), add(3, 2, 1), out(3), unmap(1),
	}
}

func buildInput() []uint32 {
	return []uint32{in(1), out(1), halt()}
}

// build50Mil reproduces the stress-test loop: r1 counts up by 2 at each of
// the eight adds in a pass (16 per pass), and once r1/50,000,000 rounds to a nonzero quotient the loop falls
// through to printing '!' and halting instead of branching back to its own
// start. It is not exercised by the unit test suite, only generated here.
func build50Mil() []uint32 {
	return []uint32{
		lv(1, 1),          // 0
		lv(2, 2),          // 1
		add(1, 1, 2),      // 2  <- loop entry
		lv(3, 5000000),    // 3
		add(1, 1, 2),      // 4
		lv(5, 10),         // 5
		add(1, 1, 2),      // 6
		mul(3, 3, 5),      // 7
		add(1, 1, 2),      // 8
		div(4, 1, 3),      // 9
		add(1, 1, 2),      // 10
		lv(5, 2),          // 11
		add(1, 1, 2),      // 12
		lv(6, 18),         // 13
		add(1, 1, 2),      // 14
		mov(5, 6, 4),      // 15
		add(1, 1, 2),      // 16
		prog(0, 5),        // 17
		lv(7, 33),         // 18
		out(7),            // 19
		halt(),            // 20
	}
}

var tests = []testCase{
	{"halt", "", "", buildHalt},
	{"print-six", "", "6", buildPrintSix},
	{"hello", "", "Hello World!\n", buildHello},
	{"add-limit", "", "A", buildAddLimit},
	{"div", "", "9960", buildDiv},
	{"mult", "", "6@A", buildMult},
	{"nand", "", "AB", buildNand},
	{"mov", "", "AB", buildMov},
	{"load-prog", "", "A", buildLoadProg},
	{"div-0", "", "", buildDivZero},
	{"map-unmap", "", "1 2 3 2 1 4", buildMapUnmap},
	{"load-store", "", "Hello World!\n", buildLoadStore},
	{"unmap-fail", "", "1", buildUnmapFail},
	{"input", "a", "a", buildInput},
	{"50mil", "", "!", build50Mil},
}

func main() {
	optOut := getopt.StringLong("out", 'o', "./tests", "output directory")
	optVerbose := getopt.BoolLong("verbose", 'v', "print each test name as it is written")
	optHelp := getopt.BoolLong("help", 'h', "help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	names := getopt.Args()
	selected := tests
	if len(names) > 0 {
		selected = nil
		for _, n := range names {
			tc, ok := findTest(n)
			if !ok {
				fmt.Fprintf(os.Stderr, "umgen: no test named %s\n", n)
				os.Exit(1)
			}
			selected = append(selected, tc)
		}
	}

	if err := os.MkdirAll(*optOut, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "umgen:", err)
		os.Exit(1)
	}

	for _, tc := range selected {
		if *optVerbose {
			fmt.Printf("writing test %q\n", tc.name)
		}
		if err := writeTest(*optOut, tc); err != nil {
			fmt.Fprintln(os.Stderr, "umgen:", err)
			os.Exit(1)
		}
	}
}

func findTest(name string) (testCase, bool) {
	for _, tc := range tests {
		if tc.name == name {
			return tc, true
		}
	}
	return testCase{}, false
}

func writeTest(dir string, tc testCase) error {
	imagePath := filepath.Join(dir, tc.name+".um")
	fp, err := os.Create(imagePath)
	if err != nil {
		return err
	}
	defer fp.Close()
	for _, w := range tc.build() {
		if err := word.WriteWord(fp, w); err != nil {
			return err
		}
	}

	if err := writeOrRemove(filepath.Join(dir, tc.name+".0"), tc.input); err != nil {
		return err
	}
	return writeOrRemove(filepath.Join(dir, tc.name+".1"), tc.expected)
}

// writeOrRemove writes contents to path, or removes any stale file left
// from a previous run when contents is empty.
func writeOrRemove(path, contents string) error {
	if contents == "" {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}
