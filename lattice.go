package mecab

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Engine is a morphological lattice engine such as MeCab.
// Implementations are not expected to be safe for concurrent use.
type Engine interface {
	// NewLattice allocates an analysis request for sentence. The request
	// owns a copy of the sentence for its whole lifetime.
	NewLattice(sentence string) (Lattice, error)
	// Parse runs the analysis. It returns false on failure, after which
	// What reports why.
	Parse(lat Lattice) bool
	// What returns the diagnostic for the last failed Parse.
	What() string
	// Close releases the engine.
	Close() error
}

// Lattice is an engine-owned analysis request. Once parsed, it exposes the
// best path as a linear chain of nodes, BOS and EOS excluded.
//
// Surface and Feature return Go-owned strings that stay valid after Destroy.
type Lattice interface {
	// Next advances to the next node and reports whether there is one.
	Next() bool
	// Surface returns the input substring covered by the current node.
	Surface() string
	// Feature returns the packed feature string of the current node.
	Feature() string
	// Destroy releases the request.
	Destroy()
}

// analyze runs one engine request over sentence and decodes every node.
// The request is released before returning on every path.
func (t *Tagger) analyze(sentence string) ([]Token, error) {
	lat, err := t.engine.NewLattice(sentence)
	if err != nil {
		return nil, errors.Wrap(err, "mecab: create lattice")
	}
	defer lat.Destroy()

	if !t.engine.Parse(lat) {
		err := &AnalysisError{Message: t.engine.What()}
		t.logger.Debug("analysis failed",
			zap.Int("sentence_len", len(sentence)),
			zap.Error(err))
		return nil, err
	}

	var output []Token
	for lat.Next() {
		surface := lat.Surface()
		feature, err := DecodeFeature(lat.Feature())
		if err != nil {
			t.logger.Debug("bad feature from engine",
				zap.String("surface", surface),
				zap.Error(err))
			return nil, err
		}
		output = append(output, Token{Surface: surface, Feature: feature})
	}
	return output, nil
}
