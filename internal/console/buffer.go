package console

// lineBuffer is a fixed-size ring buffer holding the N most recent lines printed to
// the console, so that newly-connected viewers can be caught up
type lineBuffer struct {
	lines     []Line
	capacity  int
	size      int
	headIndex int
}

// newLineBuffer initializes an empty lineBuffer that will hold lines up to the given
// capacity
func newLineBuffer(capacity int) *lineBuffer {
	return &lineBuffer{
		lines:    make([]Line, capacity),
		capacity: capacity,
	}
}

// add appends a line, potentially ejecting the oldest line from the buffer in the
// process
func (b *lineBuffer) add(line Line) {
	if b.capacity == 0 {
		return
	}
	b.lines[b.headIndex] = line
	b.headIndex = (b.headIndex + 1) % b.capacity
	b.size = min(b.size+1, b.capacity)
}

// recent returns every buffered line, oldest first
func (b *lineBuffer) recent() []Line {
	results := make([]Line, 0, b.size)
	start := (b.headIndex - b.size + b.capacity) % max(b.capacity, 1)
	for i := 0; i < b.size; i++ {
		results = append(results, b.lines[(start+i)%b.capacity])
	}
	return results
}
