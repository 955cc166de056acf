// Package cpu implements the 6502 compatible processor and its assembler.
//
// An instruction byte is split into three bit fields, aaabbbcc. The
// mnemonic is found from an ordered pattern table over (a, b, c); the
// mnemonic's instruction type then selects the addressing mode from field b
// (field a for JMP). Operand bytes follow the opcode, little-endian, their
// count fixed by the addressing mode.
//
// The Machine holds the register file (A, X, Y, SP, PC and the status
// register) and steps through fetch, decode and execute against a memory
// Bus. Failures during a step are captured as the machine fault and
// delivered to the guest as a non-maskable interrupt; a second failure
// before the fault is cleared is returned to the caller.
//
// The assembler provides a classic 6502 syntax, supporting macros, labels,
// equates, and compile-time expression evaluation.
package cpu
