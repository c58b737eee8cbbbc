package discon

import "unsafe"

// WriteMessage copies text into the MESSAGE buffer of a controller call,
// truncating to fit size bytes including the terminator.
func WriteMessage(msg *byte, size int, text string) {
	if msg == nil || size <= 0 {
		return
	}
	buf := unsafe.Slice(msg, size)
	n := copy(buf[:size-1], text)
	buf[n] = 0
}
