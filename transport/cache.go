package transport

// CacheSync exposes the points where a data-cache writeback or invalidate
// would be required. The transport never touches real cache hardware — it
// calls these hooks at exactly the points spec.md names, and the host
// platform binds them to real cache operations (or to nothing, on an
// MCU/host pair with no data cache in the path).
type CacheSync interface {
	// WritebackRange is called after new bytes have been written into a
	// send region but before the advanced wr_idx is published, covering
	// the byte range [off, off+n) of the region.
	WritebackRange(off, n uint32)
	// InvalidateRange is called before a recv region's wr_idx is loaded,
	// covering the byte range [off, off+n) of the region.
	InvalidateRange(off, n uint32)
}

// NoCacheSync is the default, no-op CacheSync: correct whenever the shared
// memory is cache-coherent between the two cores, or when running on a
// host with no MCU data cache in the path at all (e.g. the loopback test
// harness).
type NoCacheSync struct{}

func (NoCacheSync) WritebackRange(uint32, uint32)  {}
func (NoCacheSync) InvalidateRange(uint32, uint32) {}
