package query

import "github.com/pisa-go/pisa/pkg/topk"

// DefaultCounterBits is the B in "Lazy B-bit accumulator": each document
// gets a B-bit generation tag packed alongside the float accumulators,
// letting the same backing array be reused across many queries without a
// full O(numDocs) reset between them. Grounded on
// original_source/include/pisa/accumulator/lazy_accumulator.hpp's
// Lazy_Accumulator<counter_bit_size, Descriptor>; counter_bit_size there
// defaults to 4.
const DefaultCounterBits = 4

// LazyAccumulator is a reusable, B-bit-tagged score accumulator for TAAT.
// A document's accumulated score is only considered "live" for the
// current query if its packed counter equals the accumulator's current
// generation; accumulate() resets a stale slot's score to 0 before
// adding, exactly as lazy_accumulator.hpp's accumulate(document, score)
// does. Because only 2^counterBits distinct generations exist, the
// generation counter cycles; when BeginQuery wraps it back to its starting
// value, BeginQuery zeroes the whole accumulator itself (Wrapped reports
// that this has happened since the last Reset), so no Reset call is
// needed between queries.
type LazyAccumulator struct {
	counterBits       uint
	countersPerWord   int
	cycle             uint32
	descriptors       []uint64
	scores            []float32
	generation        uint32
	numDocs           int
	wrappedSinceReset bool
}

// NewLazyAccumulator allocates an accumulator sized for numDocs documents.
func NewLazyAccumulator(numDocs int, counterBits uint) *LazyAccumulator {
	if counterBits == 0 {
		counterBits = DefaultCounterBits
	}
	countersPerWord := 64 / int(counterBits)
	numWords := (numDocs + countersPerWord - 1) / countersPerWord
	if numWords == 0 {
		numWords = 1
	}
	return &LazyAccumulator{
		counterBits:     counterBits,
		countersPerWord: countersPerWord,
		cycle:           1 << counterBits,
		descriptors:     make([]uint64, numWords),
		scores:          make([]float32, numDocs),
		generation:      1, // 0 means "never touched" in the zero-initialized descriptors
		numDocs:         numDocs,
	}
}

func (a *LazyAccumulator) counter(pos int) uint32 {
	word := pos / a.countersPerWord
	shift := uint(pos%a.countersPerWord) * a.counterBits
	mask := uint64(a.cycle - 1)
	return uint32((a.descriptors[word] >> shift) & mask)
}

func (a *LazyAccumulator) setCounter(pos int, v uint32) {
	word := pos / a.countersPerWord
	shift := uint(pos%a.countersPerWord) * a.counterBits
	mask := uint64(a.cycle-1) << shift
	a.descriptors[word] = (a.descriptors[word] &^ mask) | (uint64(v) << shift)
}

// BeginQuery advances to the next generation. When the generation counter
// wraps back to its starting value, the whole accumulator is zeroed
// before the new generation begins — otherwise a document whose counter
// happens to equal the recycled generation value would resurrect a stale
// score from whichever earlier query first used that generation, without
// ever being touched by the current one.
func (a *LazyAccumulator) BeginQuery() {
	a.generation = (a.generation + 1) % a.cycle
	if a.generation == 0 {
		// 0 is reserved for "untouched"; skip straight to 1 and flag a
		// full cycle completed.
		a.generation = 1
		a.wrappedSinceReset = true
		a.zero()
	}
}

// Wrapped reports whether the generation counter has cycled back to its
// start since the last Reset.
func (a *LazyAccumulator) Wrapped() bool { return a.wrappedSinceReset }

// Reset zeroes every descriptor and score, starting a fresh generation
// cycle.
func (a *LazyAccumulator) Reset() {
	a.zero()
	a.generation = 1
	a.wrappedSinceReset = false
}

func (a *LazyAccumulator) zero() {
	for i := range a.descriptors {
		a.descriptors[i] = 0
	}
	for i := range a.scores {
		a.scores[i] = 0
	}
}

// Accumulate adds score to document's running total for the current
// query, discarding any stale value left over from a previous generation.
func (a *LazyAccumulator) Accumulate(document uint32, score float32) {
	pos := int(document)
	if a.counter(pos) != a.generation {
		a.scores[pos] = 0
		a.setCounter(pos, a.generation)
	}
	a.scores[pos] += score
}

// Aggregate walks every document whose counter matches the current
// generation and offers it to q, matching lazy_accumulator.hpp's
// aggregate(topk_queue&).
func (a *LazyAccumulator) Aggregate(q *topk.Queue) {
	for pos := 0; pos < a.numDocs; pos++ {
		if a.counter(pos) == a.generation {
			q.Insert(uint32(pos), a.scores[pos])
		}
	}
}
