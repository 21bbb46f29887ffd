// Package mips implements the instruction decoder and assembler for the
// MIPS-1 integer instruction set.
//
// Decode maps any 32-bit instruction word to a closed set of decoded
// variants, covering the register (R-type), immediate (I-type), and
// jump (J-type) encodings. Decoding is total: reserved encodings come
// back as Unknown values rather than errors.
//
// The assembler provides a macro assembler for the same instruction
// set, supporting macros, labels, equates, pseudo-instructions, and
// compile-time expression evaluation.
package mips
