package memory

const (
	RAM_OFFSET = uint16(0x80)  // First address of the RAM window.
	RAM_SIZE   = 0x80          // Bytes of RAM.
	STACK_PAGE = uint16(0x100) // First address of the stack page.
	STACK_SIZE = 0x100         // Bytes of stack.
)

// Ram is the zero page working memory.
type Ram struct {
	Data [RAM_SIZE]byte
}

// Read a byte from the RAM window.
func (ram *Ram) Read(address uint16) (value uint8, err error) {
	index, ok := window(address, RAM_OFFSET, RAM_SIZE)
	if !ok {
		err = ErrRead{Address: address}
		return
	}

	value = ram.Data[index]
	return
}

// Write a byte to the RAM window.
func (ram *Ram) Write(address uint16, value uint8) (err error) {
	index, ok := window(address, RAM_OFFSET, RAM_SIZE)
	if !ok {
		err = ErrWrite{Address: address}
		return
	}

	ram.Data[index] = value
	return
}

// Stack is the single page processor stack.
type Stack struct {
	Data [STACK_SIZE]byte
}

// Read a byte from the stack page.
func (st *Stack) Read(address uint16) (value uint8, err error) {
	index, ok := window(address, STACK_PAGE, STACK_SIZE)
	if !ok {
		err = ErrRead{Address: address}
		return
	}

	value = st.Data[index]
	return
}

// Write a byte to the stack page.
func (st *Stack) Write(address uint16, value uint8) (err error) {
	index, ok := window(address, STACK_PAGE, STACK_SIZE)
	if !ok {
		err = ErrWrite{Address: address}
		return
	}

	st.Data[index] = value
	return
}

// window translates an address into an index of a region.
func window(address uint16, offset uint16, size int) (index int, ok bool) {
	if address < offset {
		return
	}

	index = int(address - offset)
	ok = index < size
	return
}
