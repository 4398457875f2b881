package cursor

// ScoreFunc computes a term's contribution to a document's score given the
// document's frequency for that term, matching original_source's
// Score_Function<Scorer, Wand> callable shape
// (include/pisa/scorer/score_function.hpp): a closure over the query term
// weight and the scorer, applied to (docid, freq) at each cursor position.
type ScoreFunc func(docid uint32, freq uint32) float32

// Scored wraps a PostingCursor with a ScoreFunc, giving it a Score() in
// addition to DocID()/Freq()/Next()/NextGEQ()/Size(). Works over either a
// plain in-memory Cursor or a lazily block-decoding BlockCursor.
type Scored struct {
	PostingCursor
	score ScoreFunc
}

// NewScored builds a Scored cursor.
func NewScored(c PostingCursor, score ScoreFunc) *Scored {
	return &Scored{PostingCursor: c, score: score}
}

// Score returns the scorer's contribution at the current position.
func (s *Scored) Score() float32 {
	if s.Empty() {
		return 0
	}
	return s.score(s.DocID(), s.Freq())
}

// MaxScored additionally exposes a term-wide score upper bound, the value
// WAND and MaxScore use as the pivot/partition threshold contribution for
// this term across the whole list.
type MaxScored struct {
	*Scored
	maxScore float32
}

// NewMaxScored builds a MaxScored cursor with a precomputed term upper
// bound (index.MaxScoredCursor passes the scorer's MaxScore for the term).
func NewMaxScored(s *Scored, maxScore float32) *MaxScored {
	return &MaxScored{Scored: s, maxScore: maxScore}
}

// MaxScore returns the term-wide score upper bound.
func (m *MaxScored) MaxScore() float32 { return m.maxScore }

// BlockMaxLookup answers, for a given docid, the score upper bound of the
// block containing it and the docid of that block's last posting (so the
// cursor can be skipped directly to the block boundary without evaluating
// every posting inside it). Implemented by *wand.Lookup; the interface
// lives here because pkg/wand imports pkg/cursor, so the reverse import
// would be a cycle.
type BlockMaxLookup interface {
	BlockMaxScore(docid uint32) float32
	BlockLastDocID(docid uint32) uint32
}

// BlockMaxScored layers per-block upper bounds on top of MaxScored,
// grounded on original_source's block_max_scored_cursor.hpp.
type BlockMaxScored struct {
	*MaxScored
	blocks BlockMaxLookup
}

// NewBlockMaxScored builds a BlockMaxScored cursor.
func NewBlockMaxScored(m *MaxScored, blocks BlockMaxLookup) *BlockMaxScored {
	return &BlockMaxScored{MaxScored: m, blocks: blocks}
}

// BlockMaxScore returns the score upper bound of the block containing the
// cursor's current docid.
func (b *BlockMaxScored) BlockMaxScore() float32 {
	if b.Empty() {
		return 0
	}
	return b.blocks.BlockMaxScore(b.DocID())
}

// BlockLastDocID returns the last docid covered by the current block,
// letting a query algorithm skip directly past a low-scoring block without
// decoding every posting in it.
func (b *BlockMaxScored) BlockLastDocID() uint32 {
	if b.Empty() {
		return ExhaustedDocID
	}
	return b.blocks.BlockLastDocID(b.DocID())
}
