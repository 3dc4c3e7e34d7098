package dhash

const (
	primeA = 151
	primeB = 163
)

// hashString computes sum(s[i] * multiplier^(len-1-i)) mod modulus, reducing
// at each step so the accumulator never exceeds modulus*multiplier+255.
func hashString(s string, multiplier, modulus uint64) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = (h*multiplier + uint64(s[i])) % modulus
	}
	return h
}

// probeSeq is the double hashing sequence of one key over one capacity.
type probeSeq struct {
	start    uint64
	step     uint64
	capacity uint64
}

// newProbeSeq derives the sequence for key. capacity must be a prime >= 2;
// step then lies in [1, capacity-1] and the sequence is a permutation of the
// bucket indices over attempts 0..capacity-1.
//
// The second hash is reduced modulo capacity-1, not capacity: with
// h mod capacity the step h+1 equals capacity (0 mod capacity) whenever
// h == capacity-1, and the sequence never leaves its first bucket.
func newProbeSeq(key string, capacity int) probeSeq {
	c := uint64(capacity)
	return probeSeq{
		start:    hashString(key, primeA, c),
		step:     hashString(key, primeB, c-1) + 1,
		capacity: c,
	}
}

func (p probeSeq) at(attempt int) int {
	return int((p.start + uint64(attempt)*p.step) % p.capacity)
}
