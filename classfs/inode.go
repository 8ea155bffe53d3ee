package classfs

import "sync"

// inodes hands out inode numbers for one filesystem. The root is always 1.
type inodes struct {
	mu      sync.Mutex
	highest uint64
}

func (i *inodes) next() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.highest++
	return i.highest
}
