package ppg

import "fmt"

// SampleBuffer is a fixed-capacity FIFO window of samples. Pushing onto a
// full buffer evicts the oldest sample. The buffer is owned by a single
// measurement session and is not safe for concurrent use.
type SampleBuffer struct {
	samples  []Sample
	capacity int
	head     int
	count    int
}

// NewSampleBuffer creates a buffer holding exactly capacity samples.
func NewSampleBuffer(capacity int) (*SampleBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("sample buffer capacity must be positive, got %d", capacity)
	}
	return &SampleBuffer{
		samples:  make([]Sample, capacity),
		capacity: capacity,
	}, nil
}

// Push appends a sample, evicting the oldest when the buffer is full.
func (b *SampleBuffer) Push(s Sample) {
	b.samples[(b.head+b.count)%b.capacity] = s
	if b.count < b.capacity {
		b.count++
	} else {
		b.head = (b.head + 1) % b.capacity
	}
}

// Snapshot returns the buffered samples oldest-first. Slots never written
// are returned as zero samples so the result always has length Capacity.
func (b *SampleBuffer) Snapshot() []Sample {
	out := make([]Sample, b.capacity)
	for i := 0; i < b.count; i++ {
		out[b.capacity-b.count+i] = b.samples[(b.head+i)%b.capacity]
	}
	return out
}

// Full reports whether at least Capacity samples have ever been pushed.
func (b *SampleBuffer) Full() bool {
	return b.count == b.capacity
}

// Len returns the number of real samples currently held.
func (b *SampleBuffer) Len() int {
	return b.count
}

// Capacity returns the fixed window length.
func (b *SampleBuffer) Capacity() int {
	return b.capacity
}

// Reset discards all samples, returning the buffer to its initial state.
func (b *SampleBuffer) Reset() {
	b.head = 0
	b.count = 0
	for i := range b.samples {
		b.samples[i] = Sample{}
	}
}
