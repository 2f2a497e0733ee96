// Command um loads a binary program image and runs it to completion on a
// freshly constructed machine.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wordvm/um32/pkg/machine"
)

// ErrImage wraps every fatal condition in opening or sizing the program
// image: an unopenable file, a size not a multiple of four bytes, or a
// short read while loading it.
var ErrImage = errors.New("um: invalid program image")

// ErrUsage indicates the wrong number of positional arguments.
var ErrUsage = errors.New("usage: um <program.um>")

func main() {
	root := &cobra.Command{
		Use:           "um <program.um>",
		Short:         "run a 32-bit register/segment machine program",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return ErrUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(args[0])
		},
	}

	if err := root.Execute(); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, "um:", err)
		}
		os.Exit(1)
	}
}

func runImage(path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrImage, err)
	}
	defer fp.Close()

	info, err := fp.Stat()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrImage, err)
	}
	if info.Size()%4 != 0 {
		return fmt.Errorf("%w: size %d is not a multiple of four bytes", ErrImage, info.Size())
	}

	m := machine.New()
	if err := m.Load(fp, uint32(info.Size()/4)); err != nil {
		return fmt.Errorf("%w: %s", ErrImage, err)
	}

	if err := m.Run(os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("um: aborted: %w", err)
	}
	return nil
}
