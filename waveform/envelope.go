package waveform

// Peak is the lowest and highest sample observed in one pixel column.
type Peak struct {
	Min float32
	Max float32
}

// Envelope holds one Peak per output column, left to right.
type Envelope []Peak

// BuildEnvelope reduces samples to at most width columns of raw min/max peaks.
//
// Each column covers max(1, len(samples)/width) consecutive samples. Columns
// whose window starts past the end of the input are omitted, so the result is
// shorter than width when there are fewer samples than columns.
func BuildEnvelope(samples []float32, width int) Envelope {
	n := len(samples)
	if width < 1 || n == 0 {
		return nil
	}
	block := n / width
	if block < 1 {
		block = 1
	}

	cols := width
	if n < cols {
		cols = n
	}
	env := make(Envelope, 0, cols)
	for i := 0; i < width; i++ {
		start := i * block
		if start >= n {
			break
		}
		end := start + block
		if end > n {
			end = n
		}
		lo, hi := samples[start], samples[start]
		for _, s := range samples[start+1 : end] {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		env = append(env, Peak{Min: lo, Max: hi})
	}
	return env
}
