// Package image provides file-backed storage for MIPS program images:
// contiguous spans of 32-bit instruction words based at a fixed address.
package image

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Image is a contiguous span of 32-bit words based at a fixed address.
type Image struct {
	Base uint32
	Data []uint32
}

// End returns the address just past the last word.
func (im *Image) End() uint32 {
	return im.Base + 4*uint32(len(im.Data))
}

// Words iterates over the image words by address.
func (im *Image) Words() iter.Seq2[uint32, uint32] {
	return func(yield func(addr uint32, word uint32) bool) {
		for n, word := range im.Data {
			if !yield(im.Base+4*uint32(n), word) {
				return
			}
		}
	}
}

// LoadBinary reads an image of big-endian 32-bit words.
func LoadBinary(input io.Reader, base uint32) (im *Image, err error) {
	raw, err := io.ReadAll(input)
	if err != nil {
		return
	}

	if len(raw)%4 != 0 {
		err = ErrImageTruncated
		return
	}

	im = &Image{Base: base}
	for n := 0; n < len(raw); n += 4 {
		im.Data = append(im.Data, binary.BigEndian.Uint32(raw[n:]))
	}

	return
}

// SaveBinary writes the image as big-endian 32-bit words.
func (im *Image) SaveBinary(output io.Writer) (err error) {
	raw := make([]byte, 4*len(im.Data))
	for n, word := range im.Data {
		binary.BigEndian.PutUint32(raw[4*n:], word)
	}

	_, err = output.Write(raw)
	return
}

// LoadHex reads images in "ADDR: WORD" listing form, one word per
// line, with '#' comments. A new image starts at every address
// discontinuity.
func LoadHex(input io.Reader) (imgs []*Image, err error) {
	scanner := bufio.NewScanner(input)

	var im *Image
	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		line := text
		if n := strings.IndexByte(line, '#'); n >= 0 {
			line = line[:n]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var addr, word uint32
		var matched int
		matched, err = fmt.Sscanf(line, "%x: %x", &addr, &word)
		if err != nil || matched != 2 {
			err = &ErrHex{LineNo: lineno, Line: text, Err: ErrHexSyntax}
			return
		}

		if im == nil || addr != im.End() {
			im = &Image{Base: addr}
			imgs = append(imgs, im)
		}
		im.Data = append(im.Data, word)
	}

	err = scanner.Err()
	return
}

// SaveHex writes the image in "ADDR: WORD" listing form.
func (im *Image) SaveHex(output io.Writer) (err error) {
	for addr, word := range im.Words() {
		_, err = fmt.Fprintf(output, "%08x: %08x\n", addr, word)
		if err != nil {
			return
		}
	}

	return
}
