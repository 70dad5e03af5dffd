package thriftmux

import (
	"sync"
	"sync/atomic"

	"github.com/apache/thrift/lib/go/thrift"
)

// defaultBufferCapacity is the initial capacity a freshly allocated
// in-memory transport gets, matched against the reply bodies actual
// Thrift calls tend to produce: small enough not to waste memory on a
// pool of idle connections, large enough that most replies never need
// to grow the underlying buffer.
const defaultBufferCapacity = 128

// BufferPool recycles *thrift.TMemoryBuffer values across requests so
// that a busy Service doesn't allocate a fresh transport (and its
// backing byte slice) for every call it handles. Acquired and Released
// are tracked so tests can assert every acquisition is matched by
// exactly one release.
type BufferPool struct {
	pool     sync.Pool
	acquired int64
	released int64
}

// NewBufferPool builds an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return thrift.NewTMemoryBufferLen(defaultBufferCapacity)
			},
		},
	}
}

// AcquireEmpty returns a buffer with nothing read or written yet, for
// encoding a reply or exception into.
func (p *BufferPool) AcquireEmpty() *thrift.TMemoryBuffer {
	buf := p.get()
	buf.Reset()
	return buf
}

// AcquireWith returns a buffer pre-loaded with data, ready for a
// TProtocol to read an envelope and arguments back out of.
func (p *BufferPool) AcquireWith(data []byte) *thrift.TMemoryBuffer {
	buf := p.get()
	buf.Reset()
	buf.Write(data)
	return buf
}

func (p *BufferPool) get() *thrift.TMemoryBuffer {
	atomic.AddInt64(&p.acquired, 1)
	return p.pool.Get().(*thrift.TMemoryBuffer)
}

// Release returns buf to the pool. Calling Release more than once for
// the same acquisition corrupts the accounting counters and must never
// happen on any call path.
func (p *BufferPool) Release(buf *thrift.TMemoryBuffer) {
	atomic.AddInt64(&p.released, 1)
	p.pool.Put(buf)
}

// Stats reports lifetime acquire/release counts.
func (p *BufferPool) Stats() (acquired, released int64) {
	return atomic.LoadInt64(&p.acquired), atomic.LoadInt64(&p.released)
}
