package traj

// Sequence is an append-only, time-ordered sample buffer. The engine owns it
// while a run is in flight and hands it to the caller afterward; from then
// on it is read-only.
type Sequence struct {
	samples []Sample
}

func NewSequence(capacity int) *Sequence {
	return &Sequence{samples: make([]Sample, 0, capacity)}
}

// Append adds a sample. Time must strictly increase.
func (q *Sequence) Append(s Sample) error {
	if n := len(q.samples); n > 0 && s.Time <= q.samples[n-1].Time {
		return ErrOutOfOrder
	}
	q.samples = append(q.samples, s)
	return nil
}

func (q *Sequence) Len() int {
	return len(q.samples)
}

func (q *Sequence) At(i int) Sample {
	return q.samples[i]
}

func (q *Sequence) Last() (Sample, bool) {
	if len(q.samples) == 0 {
		return Sample{}, false
	}
	return q.samples[len(q.samples)-1], true
}

// Samples exposes the backing slice for iteration. Treat it as read-only.
func (q *Sequence) Samples() []Sample {
	return q.samples
}
