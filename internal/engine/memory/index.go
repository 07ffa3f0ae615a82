package memory

// Document is one indexable record: an external identifier, the indexed
// text, and arbitrary string metadata fields.
type Document struct {
	DocNo  string
	Text   string
	Fields map[string]string
}

// posting maps docID to within-document term frequency.
type posting map[int]int

// index is an in-process inverted index with document statistics.
type index struct {
	postings map[string]posting
	collFreq map[string]int // total term occurrences across the collection
	docs     []Document     // docID is the slice position
	docLens  []int
	totalLen int64
}

func newIndex() *index {
	return &index{
		postings: map[string]posting{},
		collFreq: map[string]int{},
	}
}

// add tokenizes a document and appends it to the index, assigning the next
// docID.
func (ix *index) add(d Document) int {
	docID := len(ix.docs)
	ix.docs = append(ix.docs, d)

	tokens := tokenize(d.DocNo + " " + d.Text)
	ix.docLens = append(ix.docLens, len(tokens))
	ix.totalLen += int64(len(tokens))

	for _, tok := range tokens {
		p, ok := ix.postings[tok]
		if !ok {
			p = make(posting)
			ix.postings[tok] = p
		}
		p[docID]++
		ix.collFreq[tok]++
	}
	return docID
}

func (ix *index) numDocs() int { return len(ix.docs) }

func (ix *index) avgDocLen() float64 {
	if len(ix.docs) == 0 {
		return 0
	}
	return float64(ix.totalLen) / float64(len(ix.docs))
}

// stats bundles the collection statistics weighting models read.
type collectionStats struct {
	numDocs   int
	avgDocLen float64
}

// termStats bundles the per-term statistics weighting models read.
type termStats struct {
	docFreq  int
	collFreq int
}

func (ix *index) stats() collectionStats {
	return collectionStats{numDocs: ix.numDocs(), avgDocLen: ix.avgDocLen()}
}

func (ix *index) term(t string) (posting, termStats, bool) {
	p, ok := ix.postings[t]
	if !ok {
		return nil, termStats{}, false
	}
	return p, termStats{docFreq: len(p), collFreq: ix.collFreq[t]}, true
}

// field returns a stored metadata value for a document. The docno key is
// backed by the document identifier itself.
func (ix *index) field(docID int, key string) string {
	if docID < 0 || docID >= len(ix.docs) {
		return ""
	}
	if key == "docno" {
		return ix.docs[docID].DocNo
	}
	return ix.docs[docID].Fields[key]
}
