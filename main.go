// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fernwood/gen6502/charset"
	"github.com/fernwood/gen6502/gen"
	"github.com/fernwood/gen6502/mon"
	"github.com/fernwood/gen6502/prg"
	"github.com/fernwood/gen6502/script"
)

var (
	outFile    string
	origin     uint
	verbose    bool
	listings   bool
	monitor    bool
	charsetIn  string
	charsetOut string
)

func init() {
	flag.StringVar(&outFile, "o", "", "output binary file")
	flag.UintVar(&origin, "org", 0x0600, "origin address of the program")
	flag.BoolVar(&verbose, "v", false, "verbose compile output")
	flag.BoolVar(&listings, "l", false, "print label, reference and region listings")
	flag.BoolVar(&monitor, "m", false, "start the interactive monitor after compiling")
	flag.StringVar(&charsetIn, "charset", "", "convert a PNG image to character set data")
	flag.StringVar(&charsetOut, "charout", "charset.bin", "character set output file")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: gen6502 [options] <program.star>\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	// Character set conversion is a standalone mode.
	if charsetIn != "" {
		exitOnError(convertCharset(charsetIn, charsetOut))
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}
	if origin > 0xffff {
		exitOnError(fmt.Errorf("origin $%X out of range", origin))
	}

	program, err := script.Load(args[0])
	exitOnError(err)

	var options gen.Option
	var log io.Writer = io.Discard
	if verbose {
		options |= gen.Verbose
		log = os.Stdout
	}

	result, err := gen.Compile(program, uint16(origin), log, options)
	exitOnError(err)

	fmt.Printf("Compiled '%s': %d instruction(s), $%04X-$%04X.\n",
		args[0], result.Emitted, result.Origin, result.End)

	if outFile != "" {
		err = prg.NewBinary(result).WriteFile(outFile)
		exitOnError(err)
		fmt.Printf("Saved binary '%s'.\n", outFile)
	}

	if listings {
		prg.WriteLabelListing(os.Stdout, result)
		prg.WriteReferenceListing(os.Stdout, result)
		prg.WriteRegionListing(os.Stdout, result)
		prg.WriteBreakpointListing(os.Stdout, result)
		prg.WriteWatchListing(os.Stdout, result)
	}

	if monitor {
		mon.New(result).RunCommands(os.Stdin, os.Stdout, true)
	}
}

func convertCharset(in, out string) error {
	file, err := os.Open(in)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := charset.Convert(file)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Converted '%s' to '%s' (%d characters).\n", in, out, len(data)/8)
	return nil
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
