// Package memory defines the basic interfaces for working with a 6502
// family memory map and the flat RAM backing used by this emulator.
package memory

import "fmt"

// Bank is the storage interface the Bus forwards reads and writes to.
// It owns the actual bytes; the Bus exists purely to centralize address
// decoding so memory-mapped devices can be added later without touching
// the CPU.
type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value.
	Write(addr uint16, val uint8)
	// Reset zero-fills the backing storage.
	Reset()
}

// InvalidBankSize is returned when a RAM bank is requested at a size that
// isn't a power of 2 or doesn't fit in a 16 bit address space.
type InvalidBankSize struct {
	Size int
}

// Error implements the error interface.
func (e InvalidBankSize) Error() string {
	return fmt.Sprintf("invalid bank size: %d must be a power of 2 no larger than 65536", e.Size)
}

// ram implements Bank as a flat byte array. Addresses are masked to fit so
// a bank smaller than 64k will alias on Read/Write.
type ram struct {
	mem []uint8
}

// NewRAMBank creates a R/W RAM bank of the given size. Size must be a power
// of 2 and no larger than 64k (the full 16 bit address space).
func NewRAMBank(size int) (Bank, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, InvalidBankSize{size}
	}
	if size > 1<<16 {
		return nil, InvalidBankSize{size}
	}
	return &ram{mem: make([]uint8, size)}, nil
}

// NewRAM creates the standard 64k flat RAM bank this emulator targets.
func NewRAM() Bank {
	b, _ := NewRAMBank(1 << 16)
	return b
}

// Read implements Bank. Address is masked to fit the backing size.
func (r *ram) Read(addr uint16) uint8 {
	return r.mem[int(addr)&(len(r.mem)-1)]
}

// Write implements Bank. Address is masked to fit the backing size.
func (r *ram) Write(addr uint16, val uint8) {
	r.mem[int(addr)&(len(r.mem)-1)] = val
}

// Reset implements Bank and zero-fills the backing store, matching real
// hardware power-on RAM contents being undefined but this emulator's
// documented choice of all zeros (spec'd for deterministic test harnesses).
func (r *ram) Reset() {
	for i := range r.mem {
		r.mem[i] = 0
	}
}

// Bus is the narrow read/write façade between the CPU and a memory Bank.
// It owns nothing of its own; every address is defined (unmapped reads
// return 0x00, unmapped writes are dropped) because the sole backing today
// is a fully populated flat RAM bank.
type Bus struct {
	bank Bank
}

// NewBus wraps bank behind a Bus.
func NewBus(bank Bank) *Bus {
	return &Bus{bank: bank}
}

// Read returns the byte stored at addr.
func (b *Bus) Read(addr uint16) uint8 {
	return b.bank.Read(addr)
}

// Write stores val at addr.
func (b *Bus) Write(addr uint16, val uint8) {
	b.bank.Write(addr, val)
}

// Reset zeroes the backing memory.
func (b *Bus) Reset() {
	b.bank.Reset()
}
