package task

// Kind identifies a class of accounted resources.
type Kind int

const (
	KindMutex Kind = iota
	KindSemaphore
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindMutex:
		return "mutex"
	case KindSemaphore:
		return "semaphore"
	}
	return "unknown"
}

// Vector holds one counter per resource id; it grows on write and reads
// missing entries as zero.
type Vector []int

// At returns the counter for id.
func (v Vector) At(id int) int {
	if id < 0 || id >= len(v) {
		return 0
	}
	return v[id]
}

// Add adjusts the counter for id by delta and returns the updated vector.
func (v Vector) Add(id, delta int) Vector {
	if id >= len(v) {
		grown := make(Vector, id+1)
		copy(grown, v)
		v = grown
	}
	v[id] += delta
	return v
}

// Clone returns a copy of the vector.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Vectors keeps one Vector per resource kind.
type Vectors [kindCount]Vector

// At returns the counter of resource id of kind k.
func (v *Vectors) At(k Kind, id int) int {
	return v[k].At(id)
}

// Add adjusts the counter of resource id of kind k.
func (v *Vectors) Add(k Kind, id, delta int) {
	v[k] = v[k].Add(id, delta)
}

// Kinds lists every accounted resource kind.
func Kinds() []Kind {
	return []Kind{KindMutex, KindSemaphore}
}
