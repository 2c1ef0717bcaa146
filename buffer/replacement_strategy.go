package buffer

// ReplacementStrategy decides which buffer to evict when a new block needs
// to be pinned and no buffer is already assigned to it.
type ReplacementStrategy interface {
	// initialize gives the strategy a view of the full buffer pool.
	initialize(pool []*Buffer)

	// chooseUnpinnedBuffer returns an unpinned buffer to assign to a new
	// block, or nil if every buffer in the pool is currently pinned.
	chooseUnpinnedBuffer() *Buffer

	// pinBuffer notifies the strategy that a buffer was just pinned.
	pinBuffer(buff *Buffer)

	// unpinBuffer notifies the strategy that a buffer was just unpinned.
	unpinBuffer(buff *Buffer)
}

// NaiveStrategy chooses the first unpinned buffer it finds by scanning the
// pool in order. It keeps no other bookkeeping.
type NaiveStrategy struct {
	pool []*Buffer
}

// NewNaiveStrategy creates a replacement strategy that scans the buffer
// pool linearly, looking for the first unpinned buffer.
func NewNaiveStrategy() *NaiveStrategy {
	return &NaiveStrategy{}
}

func (s *NaiveStrategy) initialize(pool []*Buffer) {
	s.pool = pool
}

func (s *NaiveStrategy) chooseUnpinnedBuffer() *Buffer {
	for _, buff := range s.pool {
		if !buff.isPinned() {
			return buff
		}
	}
	return nil
}

func (s *NaiveStrategy) pinBuffer(_ *Buffer)   {}
func (s *NaiveStrategy) unpinBuffer(_ *Buffer) {}
