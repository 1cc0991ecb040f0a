package mecab

import (
	"strings"
	"unicode/utf8"
)

// fakeDict maps surfaces to mecab-ko-dic style features.
var fakeDict = map[string]string{
	"나":   "NP,*,F,나,*,*,*,*",
	"는":   "JX,*,T,는,*,*,*,*",
	"밥":   "NNG,*,T,밥,*,*,*,*",
	"을":   "JKO,*,T,을,*,*,*,*",
	"먹":   "VV,*,T,먹,*,*,*,*",
	"었":   "EP,*,T,었,*,*,*,*",
	"다":   "EF,*,F,다,*,*,*,*",
	"학교":  "NNG,*,F,학교,*,*,*,*",
	"에":   "JKB,*,F,에,*,*,*,*",
	"갔":   "VV+EP,*,T,갔,Inflect,VV,EP,가/VV/*+았/EP/*",
	"서울":  "NNP,지명,T,서울,*,*,*,*",
	"대학교": "NNG,*,F,대학교,Compound,*,*,대학/NNG/*+교/NNG/*",
	".":   "SF,*,*,*,*,*,*,*",
}

// fakeEngine segments a sentence by longest match against fakeDict after
// dropping whitespace, the way mecab ignores it.
type fakeEngine struct {
	dict map[string]string
	// fail maps a sentence to the diagnostic Parse reports for it.
	fail map[string]string

	what      string
	created   int
	destroyed int
	closed    bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{dict: fakeDict, fail: map[string]string{}}
}

type fakeLattice struct {
	engine   *fakeEngine
	sentence string
	nodes    [][2]string
	pos      int
	dead     bool
}

func (l *fakeLattice) Next() bool {
	if l.pos >= len(l.nodes) {
		return false
	}
	l.pos++
	return true
}

func (l *fakeLattice) Surface() string { return l.nodes[l.pos-1][0] }
func (l *fakeLattice) Feature() string { return l.nodes[l.pos-1][1] }

func (l *fakeLattice) Destroy() {
	if !l.dead {
		l.dead = true
		l.engine.destroyed++
	}
}

func (e *fakeEngine) NewLattice(sentence string) (Lattice, error) {
	e.created++
	return &fakeLattice{engine: e, sentence: sentence}, nil
}

func (e *fakeEngine) Parse(lat Lattice) bool {
	fl := lat.(*fakeLattice)
	if msg, ok := e.fail[fl.sentence]; ok {
		e.what = msg
		return false
	}
	rest := fl.sentence
	for rest != "" {
		r, size := utf8.DecodeRuneInString(rest)
		if strings.ContainsRune(Spaces, r) {
			rest = rest[size:]
			continue
		}
		match := ""
		for surface := range e.dict {
			if strings.HasPrefix(rest, surface) && len(surface) > len(match) {
				match = surface
			}
		}
		if match == "" {
			// Unknown rune: emit it on its own as a foreign symbol.
			match = rest[:size]
			fl.nodes = append(fl.nodes, [2]string{match, "SL,*,*,*,*,*,*,*"})
		} else {
			fl.nodes = append(fl.nodes, [2]string{match, e.dict[match]})
		}
		rest = rest[len(match):]
	}
	return true
}

func (e *fakeEngine) What() string { return e.what }

func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

func newFakeTagger(e *fakeEngine) *Tagger {
	t, err := New(WithEngine(e))
	if err != nil {
		panic(err)
	}
	return t
}
