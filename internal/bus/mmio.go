package bus

// mmio.go implements the I/O page: 4 KiB of shadow bytes plus a sparse set of registered device
// handlers.

import (
	"mipscore/internal/log"
)

// ReadFunc and WriteFunc are peripheral callbacks registered into the I/O page. They must not
// block -- the bus calls into them inline, on the CPU's single thread of control.
type (
	ReadFunc  func(offset uint32) byte
	WriteFunc func(offset uint32, v byte)
)

// handler covers [base, base+width) of the I/O page.
type handler struct {
	base  uint32
	width uint32
	read  ReadFunc
	write WriteFunc
}

func (h *handler) contains(offset uint32) bool {
	return offset >= h.base && offset-h.base < h.width
}

// MMIO is the memory-mapped I/O controller. Reads of an offset with no registered handler return
// the shadow byte; writes to an unregistered offset update the shadow byte and are otherwise
// silent. MMIO is the only source of observable side effects on a bus operation.
type MMIO struct {
	shadow   [IOSize]byte
	handlers []*handler
	log      *log.Logger
}

// NewMMIO creates an I/O page controller with no registered devices.
func NewMMIO() *MMIO {
	return &MMIO{log: log.DefaultLogger()}
}

// Register installs a device handler covering [offset, offset+width) of the I/O page. When two
// registrations overlap at a given offset, the narrower one wins.
func (m *MMIO) Register(offset, width uint32, read ReadFunc, write WriteFunc) {
	m.handlers = append(m.handlers, &handler{base: offset, width: width, read: read, write: write})

	m.log.Debug("mmio: registered handler", "offset", offset, "width", width)
}

// find returns the narrowest handler covering offset, or nil.
func (m *MMIO) find(offset uint32) *handler {
	var best *handler

	for _, h := range m.handlers {
		if h.contains(offset) && (best == nil || h.width < best.width) {
			best = h
		}
	}

	return best
}

// Read returns the byte at offset within the I/O page.
func (m *MMIO) Read(offset uint32) byte {
	if h := m.find(offset); h != nil && h.read != nil {
		v := h.read(offset - h.base)
		m.shadow[offset] = v

		return v
	}

	return m.shadow[offset]
}

// Write stores the byte at offset within the I/O page.
func (m *MMIO) Write(offset uint32, v byte) {
	m.shadow[offset] = v

	if h := m.find(offset); h != nil && h.write != nil {
		h.write(offset-h.base, v)
	}
}
