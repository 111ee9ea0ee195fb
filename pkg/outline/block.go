// Package outline classifies free-text answers into typed blocks:
// numbered items, bullet items, and paragraphs.
package outline

// Kind identifies the variant of a Block.
type Kind string

// Block kinds.
const (
	KindNumbered  Kind = "numbered"
	KindBullet    Kind = "bullet"
	KindParagraph Kind = "paragraph"
)

// Alignment is the horizontal alignment of a paragraph block.
type Alignment string

// Paragraph alignments.
const (
	AlignCenter  Alignment = "center"
	AlignJustify Alignment = "justify"
)

// Block is one classified, renderable unit of text.
// Seq is the 1-based position of a numbered item within its run and is zero
// for other kinds. Align only applies to paragraphs.
type Block struct {
	Kind  Kind      `json:"kind"`
	Seq   int       `json:"seq,omitempty"`
	Text  string    `json:"text"`
	Align Alignment `json:"align,omitempty"`
}

// Numbered returns a numbered item block.
func Numbered(seq int, text string) Block {
	return Block{Kind: KindNumbered, Seq: seq, Text: text}
}

// Bullet returns a bullet item block.
func Bullet(text string) Block {
	return Block{Kind: KindBullet, Text: text}
}

// Paragraph returns a paragraph block with the given alignment.
func Paragraph(text string, align Alignment) Block {
	return Block{Kind: KindParagraph, Text: text, Align: align}
}

// IsList reports whether the block belongs to a list run.
func (b Block) IsList() bool {
	return b.Kind == KindNumbered || b.Kind == KindBullet
}

// Run is a maximal sequence of consecutive blocks of the same list kind.
// Every paragraph forms a run of its own.
type Run struct {
	Kind   Kind
	Blocks []Block
}

// Runs groups blocks into runs, preserving order.
func Runs(blocks []Block) []Run {
	var runs []Run
	for _, b := range blocks {
		if n := len(runs); n > 0 && b.IsList() && runs[n-1].Kind == b.Kind {
			runs[n-1].Blocks = append(runs[n-1].Blocks, b)
			continue
		}
		runs = append(runs, Run{Kind: b.Kind, Blocks: []Block{b}})
	}
	return runs
}

// Texts returns the text of each block in order.
func Texts(blocks []Block) []string {
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}
	return texts
}
