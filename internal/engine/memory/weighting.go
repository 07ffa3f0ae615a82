package memory

import (
	"fmt"
	"math"

	"github.com/sift-ir/sift/internal/engine"
)

// weighting scores one (term, document) pair. c is the model's tuning
// parameter; its meaning is model-specific.
type weighting interface {
	score(tf, docLen float64, term termStats, coll collectionStats, c float64) float64
}

// newWeighting resolves a weighting model by name.
func newWeighting(name string) (weighting, error) {
	switch name {
	case "pl2":
		return pl2{}, nil
	case "bm25":
		return bm25{}, nil
	case "tfidf":
		return tfidf{}, nil
	default:
		return nil, fmt.Errorf("%w: weighting model %q", engine.ErrUnknownModel, name)
	}
}

const log2e = math.Log2E

// pl2 is the Poisson estimation model with Laplace after-effect and
// c-controlled term frequency normalisation 2.
type pl2 struct{}

func (pl2) score(tf, docLen float64, term termStats, coll collectionStats, c float64) float64 {
	if c <= 0 {
		c = 1.0
	}
	tfn := tf * math.Log2(1.0+c*coll.avgDocLen/docLen)
	if tfn <= 0 {
		return 0
	}
	lambda := float64(term.collFreq) / float64(coll.numDocs)
	if lambda <= 0 {
		return 0
	}
	return (1.0 / (tfn + 1.0)) *
		(tfn*math.Log2(tfn/lambda) +
			(lambda-tfn)*log2e +
			0.5*math.Log2(2.0*math.Pi*tfn))
}

// bm25 maps the tuning parameter onto the length-normalisation slope b; out
// of range values fall back to 0.75.
type bm25 struct{}

func (bm25) score(tf, docLen float64, term termStats, coll collectionStats, c float64) float64 {
	const k1 = 1.2
	b := c
	if b <= 0 || b > 1 {
		b = 0.75
	}
	n := float64(coll.numDocs)
	df := float64(term.docFreq)
	idf := math.Log2((n - df + 0.5) / (df + 0.5))
	norm := k1 * (1.0 - b + b*docLen/coll.avgDocLen)
	return idf * tf * (k1 + 1.0) / (tf + norm)
}

// tfidf is Robertson's tf multiplied by an idf; the tuning parameter plays
// the same slope role as in bm25.
type tfidf struct{}

func (tfidf) score(tf, docLen float64, term termStats, coll collectionStats, c float64) float64 {
	const k1 = 1.2
	b := c
	if b <= 0 || b > 1 {
		b = 0.75
	}
	wtf := k1 * tf / (tf + k1*(1.0-b+b*docLen/coll.avgDocLen))
	idf := math.Log2(float64(coll.numDocs)/float64(term.docFreq) + 1.0)
	return wtf * idf
}
