// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command robddctl is a one-shot driver over the robdd engine contract of
// §6.2: each invocation performs exactly one operation, over NID text
// notation (§6.1), and exits — deliberately not an interactive shell, per
// the Non-goals that rule one out. State does not persist between
// invocations except through --load/--save, which read and write the byte
// stream described in §6.3.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fenwicksys/robdd"
)

var (
	flagVarnum  int
	flagLoad    string
	flagSave    string
	flagWorkers int
)

func openBase() (*robdd.Base, error) {
	if flagLoad != "" {
		f, err := os.Open(flagLoad)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return robdd.Load(f, robdd.Workers(flagWorkers))
	}
	return robdd.New(flagVarnum, robdd.Workers(flagWorkers))
}

func closeBase(b *robdd.Base) error {
	var saveErr error
	if flagSave != "" {
		f, err := os.Create(flagSave)
		if err != nil {
			saveErr = err
		} else {
			saveErr = b.Save(f)
			f.Close()
		}
	}
	if err := b.Close(); err != nil && saveErr == nil {
		saveErr = err
	}
	return saveErr
}

func parseNIDs(args []string) ([]robdd.NID, error) {
	out := make([]robdd.NID, len(args))
	for i, a := range args {
		n, err := robdd.Parse(a)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// runBinary wires a two-argument engine operation (and/or/xor) into a
// cobra RunE: open the engine, parse both NID arguments, run op, print the
// result, then save and close.
func runBinary(op func(b *robdd.Base, a, c robdd.NID) (robdd.NID, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		b, err := openBase()
		if err != nil {
			return err
		}
		ns, err := parseNIDs(args)
		if err != nil {
			_ = b.Close()
			return err
		}
		res, err := op(b, ns[0], ns[1])
		if err != nil {
			_ = b.Close()
			return err
		}
		fmt.Println(robdd.Display(res))
		return closeBase(b)
	}
}

func iteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ite F G H",
		Short: "compute ite(f,g,h)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBase()
			if err != nil {
				return err
			}
			ns, err := parseNIDs(args)
			if err != nil {
				_ = b.Close()
				return err
			}
			res, err := b.Ite(ns[0], ns[1], ns[2])
			if err != nil {
				_ = b.Close()
				return err
			}
			fmt.Println(robdd.Display(res))
			return closeBase(b)
		},
	}
}

func andCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "and A B",
		Short: "compute and(a,b)",
		Args:  cobra.ExactArgs(2),
		RunE:  runBinary(func(b *robdd.Base, a, c robdd.NID) (robdd.NID, error) { return b.And(a, c) }),
	}
}

func orCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "or A B",
		Short: "compute or(a,b)",
		Args:  cobra.ExactArgs(2),
		RunE:  runBinary(func(b *robdd.Base, a, c robdd.NID) (robdd.NID, error) { return b.Or(a, c) }),
	}
}

func xorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xor A B",
		Short: "compute xor(a,b)",
		Args:  cobra.ExactArgs(2),
		RunE:  runBinary(func(b *robdd.Base, a, c robdd.NID) (robdd.NID, error) { return b.Xor(a, c) }),
	}
}

func nidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nid N",
		Short: "inspect a single NID's (hi, lo) pair; requires --load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBase()
			if err != nil {
				return err
			}
			defer b.Close()
			n, err := robdd.Parse(args[0])
			if err != nil {
				return err
			}
			hi, lo, ok, err := b.Nid(n)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("leaf")
				return nil
			}
			fmt.Printf("%s %s\n", robdd.Display(hi), robdd.Display(lo))
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "print basic engine statistics; requires --load to report a populated table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBase()
			if err != nil {
				return err
			}
			defer b.Close()
			fmt.Printf("varnum: %d\n", b.Varnum())
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:   "robddctl",
		Short: "one-shot driver for the robdd concurrent ROBDD engine",
	}
	root.PersistentFlags().IntVar(&flagVarnum, "varnum", 0, "number of real input variables (ignored with --load)")
	root.PersistentFlags().StringVar(&flagLoad, "load", "", "load engine state from a save stream (§6.3) before running the operation")
	root.PersistentFlags().StringVar(&flagSave, "save", "", "save engine state to a save stream (§6.3) after running the operation")
	root.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Swarm worker count (0 picks the default)")

	root.AddCommand(iteCmd(), andCmd(), orCmd(), xorCmd(), nidCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
