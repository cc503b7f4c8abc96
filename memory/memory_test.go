package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRAMBankRejectsNonPowerOfTwo(t *testing.T) {
	_, err := NewRAMBank(100)
	assert.Error(t, err)
	var sizeErr InvalidBankSize
	assert.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 100, sizeErr.Size)
}

func TestNewRAMBankRejectsOversize(t *testing.T) {
	_, err := NewRAMBank(1 << 17)
	assert.Error(t, err)
}

func TestNewRAMBankAcceptsPowerOfTwo(t *testing.T) {
	b, err := NewRAMBank(256)
	assert.NoError(t, err)
	assert.NotNil(t, b)
}

func TestRAMReadWrite(t *testing.T) {
	b, err := NewRAMBank(1 << 16)
	assert.NoError(t, err)
	b.Write(0x1234, 0xAB)
	assert.Equal(t, uint8(0xAB), b.Read(0x1234))
	b.Write(0x1234, 0xCD)
	assert.Equal(t, uint8(0xCD), b.Read(0x1234))
}

// A bank smaller than the full address space aliases addresses that land
// on the same offset modulo its size.
func TestRAMAliasesWhenSmallerThanAddressSpace(t *testing.T) {
	b, err := NewRAMBank(256)
	assert.NoError(t, err)
	b.Write(0x0010, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0x0110))
	assert.Equal(t, uint8(0x42), b.Read(0xFF10))
}

func TestRAMResetZeroesAll(t *testing.T) {
	b, err := NewRAMBank(256)
	assert.NoError(t, err)
	for i := 0; i < 256; i++ {
		b.Write(uint16(i), 0xFF)
	}
	b.Reset()
	for i := 0; i < 256; i++ {
		assert.Equal(t, uint8(0x00), b.Read(uint16(i)), "offset %d", i)
	}
}

func TestBusDelegatesToBank(t *testing.T) {
	bus := NewBus(NewRAM())
	bus.Write(0x4000, 0x99)
	assert.Equal(t, uint8(0x99), bus.Read(0x4000))
	bus.Reset()
	assert.Equal(t, uint8(0x00), bus.Read(0x4000))
}
