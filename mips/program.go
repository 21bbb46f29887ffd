package mips

import (
	"iter"

	"github.com/ezrec/umips/image"
)

// Opcode represents a line of assembled code with its source location
// and generated instruction words.
type Opcode struct {
	LineNo    int
	Addr      uint32
	Words     []string
	Codes     []uint32
	LinkLabel string
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug associates an address with its source opcode.
type Debug struct {
	*Opcode
	Index int
}

// Debug looks up the source opcode covering an address.
func (prog *Program) Debug(addr uint32) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && addr < op.Addr+4*uint32(len(op.Codes)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr-op.Addr) / 4,
			}
			break
		}
	}

	return
}

// Codes iterates over all assembled words by address.
func (prog *Program) Codes() iter.Seq2[uint32, uint32] {
	return func(yield func(addr uint32, code uint32) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Addr+4*uint32(n), code) {
					return
				}
			}
		}
	}
}

// Images collects the assembled words into contiguous images, starting
// a new image at every address discontinuity (.org).
func (prog *Program) Images() (imgs []*image.Image) {
	var img *image.Image

	for addr, code := range prog.Codes() {
		if img == nil || addr != img.End() {
			img = &image.Image{Base: addr}
			imgs = append(imgs, img)
		}
		img.Data = append(img.Data, code)
	}

	return
}
