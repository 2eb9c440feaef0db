package model

import "sync"

// scratchBuf holds pooled scratch memory for vectorized evaluation.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// getScratch returns k slices of length n backed by one pooled buffer.
func getScratch(n, k int) ([][]float64, *scratchBuf) {
	buf := scratchPool.Get().(*scratchBuf)
	need := k * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	out := make([][]float64, k)
	for i := range out {
		out[i] = buf.data[i*n : (i+1)*n]
	}

	return out, buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}
