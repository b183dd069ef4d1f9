package nes

// RAM is a flat byte array, used for both the 2KB CPU work RAM and the PPU nametable RAM.
type RAM struct {
	data []byte
}

// NewRAM creates a RAM with the given size in bytes.
func NewRAM(size int) *RAM {
	return &RAM{data: make([]byte, size)}
}

// read reads data, the address wraps around the size of the RAM.
func (r *RAM) read(address uint16) byte {
	return r.data[int(address)%len(r.data)]
}

// write writes data, the address wraps around the size of the RAM.
func (r *RAM) write(address uint16, x byte) {
	r.data[int(address)%len(r.data)] = x
}

