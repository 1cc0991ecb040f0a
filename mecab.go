// Package mecab provides Korean morphological analysis on top of the MeCab
// engine and the mecab-ko-dic dictionary. It decodes the dictionary's packed
// feature strings and can put back the whitespace the engine drops.
//
// A Tagger is not safe for concurrent use; give each goroutine its own
// Tagger or guard a shared one with a mutex.
package mecab

import (
	"iter"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Tagger holds an engine and provides the public API.
type Tagger struct {
	engine Engine
	logger *zap.Logger
}

type config struct {
	dicPath string
	engine  Engine
	logger  *zap.Logger
}

// Option configures a Tagger.
type Option func(*config)

// WithDicPath makes the default engine load the dictionary at path
// instead of its compiled-in location.
func WithDicPath(path string) Option {
	return func(c *config) {
		c.dicPath = path
	}
}

// WithEngine uses e instead of the default engine. The Tagger takes
// ownership and closes e on Close.
func WithEngine(e Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// New returns a ready-to-use Tagger.
func New(opts ...Option) (*Tagger, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.engine == nil {
		e, err := newDefaultEngine(c.dicPath)
		if err != nil {
			return nil, err
		}
		c.engine = e
	}
	return &Tagger{engine: c.engine, logger: c.logger}, nil
}

// Close releases the underlying engine.
func (t *Tagger) Close() error {
	return t.engine.Close()
}

// Tokenize analyses sentence into tokens. With dropSpace false, whitespace
// runes are kept as single-rune tokens tagged "SP", so the surfaces
// concatenate back to sentence exactly.
func (t *Tagger) Tokenize(sentence string, dropSpace bool) ([]Token, error) {
	output, err := t.analyze(sentence)
	if err != nil {
		return nil, err
	}
	if !dropSpace {
		output, err = ReinsertSpaces(sentence, output, Spaces)
		if err != nil {
			return nil, err
		}
	}
	return output, nil
}

// TaggedSurface pairs a surface with its part-of-speech tag.
type TaggedSurface struct {
	Surface string `json:"surface"`
	POS     string `json:"pos"`
}

// Tags returns each token's surface and part-of-speech tag.
func (t *Tagger) Tags(sentence string, dropSpace bool) ([]TaggedSurface, error) {
	tokens, err := t.Tokenize(sentence, dropSpace)
	if err != nil {
		return nil, err
	}
	return lo.Map(tokens, func(tok Token, _ int) TaggedSurface {
		return TaggedSurface{Surface: tok.Surface, POS: tok.Feature.POS}
	}), nil
}

// Surfaces returns the token surfaces in order.
func (t *Tagger) Surfaces(sentence string, dropSpace bool) ([]string, error) {
	tokens, err := t.Tokenize(sentence, dropSpace)
	if err != nil {
		return nil, err
	}
	return lo.Map(tokens, func(tok Token, _ int) string {
		return tok.Surface
	}), nil
}

// SurfaceSeq analyses sentence once and returns a sequence over the token
// surfaces. The sequence can be ranged over any number of times.
func (t *Tagger) SurfaceSeq(sentence string, dropSpace bool) (iter.Seq[string], error) {
	tokens, err := t.Tokenize(sentence, dropSpace)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for _, tok := range tokens {
			if !yield(tok.Surface) {
				return
			}
		}
	}, nil
}

// Nouns returns the surfaces of tokens whose tag starts with "N".
func (t *Tagger) Nouns(sentence string, dropSpace bool) ([]string, error) {
	tokens, err := t.Tokenize(sentence, dropSpace)
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(tokens, func(tok Token, _ int) (string, bool) {
		return tok.Surface, isNoun(tok.Feature.POS)
	}), nil
}

func isNoun(pos string) bool {
	return strings.HasPrefix(pos, "N")
}
