// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package disasm formats program images as assembly listings. It is a
// pure consumer of the mips decoder: every word disassembles to exactly
// one line, with unrecognized encodings rendered as .word directives.
package disasm

import (
	"fmt"
	"io"
	"iter"
	"log"

	"github.com/ezrec/umips/image"
	"github.com/ezrec/umips/internal"
	"github.com/ezrec/umips/mips"
)

// Disassembler renders one or more program images as assembly text.
type Disassembler struct {
	Verbose bool              // If set, verbosely logs each decoded word.
	Symbols map[uint32]string // Names for branch and jump targets.

	images []*image.Image
}

// New creates a disassembler over a set of images.
func New(images ...*image.Image) (dis *Disassembler) {
	dis = &Disassembler{
		images: images,
	}

	return
}

// words iterates over all images by address.
func (dis *Disassembler) words() iter.Seq2[uint32, uint32] {
	seqs := make([]iter.Seq2[uint32, uint32], 0, len(dis.images))
	for _, img := range dis.images {
		seqs = append(seqs, img.Words())
	}

	return internal.IterSeq2Concat(seqs...)
}

// target returns the control-flow destination of a decoded instruction,
// if it has one.
func target(in mips.Instruction) (addr uint32, ok bool) {
	switch in := in.(type) {
	case mips.Branch:
		return in.Target, true
	case mips.Jump:
		return in.Target, true
	}

	return
}

// ScanLabels populates Symbols with generated names for every branch
// and jump destination found in the images.
func (dis *Disassembler) ScanLabels() {
	if dis.Symbols == nil {
		dis.Symbols = make(map[uint32]string, 16)
	}

	for addr, word := range dis.words() {
		dest, ok := target(mips.Decode(word, addr))
		if !ok {
			continue
		}
		if _, ok := dis.Symbols[dest]; !ok {
			dis.Symbols[dest] = fmt.Sprintf("L_%08x", dest)
		}
	}
}

// format renders a single decoded word, substituting symbol names for
// known control-flow destinations.
func (dis *Disassembler) format(addr, word uint32) (text string) {
	in := mips.Decode(word, addr)

	text = in.String()
	if dest, ok := target(in); ok {
		if name, ok := dis.Symbols[dest]; ok {
			switch in := in.(type) {
			case mips.Branch:
				if in.Op.HasRt() {
					text = fmt.Sprintf("%v %v, %v, %v", in.Op, in.Rs, in.Rt, name)
				} else {
					text = fmt.Sprintf("%v %v, %v", in.Op, in.Rs, name)
				}
			case mips.Jump:
				mnemonic := "j"
				if in.Link {
					mnemonic = "jal"
				}
				text = fmt.Sprintf("%v %v", mnemonic, name)
			}
		}
	}

	if dis.Verbose {
		log.Printf("%08x: %08x %v", addr, word, text)
	}

	return
}

// Lines iterates over the formatted listing by address. Label
// definition lines are not included; see WriteTo.
func (dis *Disassembler) Lines() iter.Seq2[uint32, string] {
	return func(yield func(addr uint32, line string) bool) {
		for addr, word := range dis.words() {
			if !yield(addr, fmt.Sprintf("%08x:  %08x  %v", addr, word, dis.format(addr, word))) {
				return
			}
		}
	}
}

// WriteTo writes the full listing, with label definition lines where a
// symbol is defined inside the images.
func (dis *Disassembler) WriteTo(output io.Writer) (total int64, err error) {
	var n int
	for addr, line := range dis.Lines() {
		if name, ok := dis.Symbols[addr]; ok {
			n, err = fmt.Fprintf(output, "%v:\n", name)
			total += int64(n)
			if err != nil {
				return
			}
		}
		n, err = fmt.Fprintln(output, line)
		total += int64(n)
		if err != nil {
			return
		}
	}

	return
}
