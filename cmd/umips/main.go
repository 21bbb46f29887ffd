// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/umips/disasm"
	"github.com/ezrec/umips/image"
	"github.com/ezrec/umips/mips"
)

func main() {
	var compile string
	var disassemble string
	var output string
	var base uint64
	var labels bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&disassemble, "d", "", "image file to disassemble (.hex or binary)")
	flag.StringVar(&output, "o", "", "output image (.hex for a listing, binary otherwise)")
	flag.Uint64Var(&base, "b", 0, "base address for assembly and binary images")
	flag.BoolVar(&labels, "l", false, "generate labels for branch and jump targets")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var imgs []*image.Image
	symbols := map[uint32]string{}

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &mips.Assembler{Verbose: verbose, Origin: uint32(base)}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		imgs = prog.Images()
		for name, addr := range asm.Label {
			symbols[addr] = name
		}
	}

	// Load an existing image.
	if len(disassemble) != 0 {
		inf, err := os.Open(disassemble)
		if err != nil {
			log.Fatalf("%v: %v", disassemble, err)
		}
		defer inf.Close()

		if strings.HasSuffix(disassemble, ".hex") {
			imgs, err = image.LoadHex(inf)
		} else {
			var img *image.Image
			img, err = image.LoadBinary(inf, uint32(base))
			imgs = []*image.Image{img}
		}
		if err != nil {
			log.Fatalf("%v: %v", disassemble, err)
		}
	}

	if len(imgs) == 0 {
		log.Fatalf("%v: nothing to do; use -c or -d", os.Args[0])
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		if strings.HasSuffix(output, ".hex") {
			for _, img := range imgs {
				if err = img.SaveHex(ouf); err != nil {
					log.Fatalf("%v: %v", output, err)
				}
			}
			return
		}

		if len(imgs) != 1 {
			log.Fatalf("%v: %v segments; binary images must be contiguous", output, len(imgs))
		}
		if err = imgs[0].SaveBinary(ouf); err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	// No output file; write a listing to stdout.
	dis := disasm.New(imgs...)
	dis.Verbose = verbose
	dis.Symbols = symbols
	if labels {
		dis.ScanLabels()
	}

	if _, err := dis.WriteTo(os.Stdout); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
