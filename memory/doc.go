// Package memory provides the address space seen by the processor.
//
// The address space is split into disjoint regions: a small RAM window
// holding the zero page variables, a single page hardware stack, and a
// bank switched ROM window at the top of memory that also holds the
// interrupt vectors. Reads are dispatched to RAM, then Stack, then ROM.
// Writes reach only RAM and Stack; the ROM is read-only.
package memory
