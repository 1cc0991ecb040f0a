//go:build mecab && cgo

package mecab

/*
#cgo LDFLAGS: -lmecab
#include <stdlib.h>
#include <mecab.h>
*/
import "C"

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// LibEngine drives libmecab in process.
type LibEngine struct {
	ptr *C.mecab_t
	err string
}

var _ Engine = (*LibEngine)(nil)

// NewLibEngine creates a libmecab tagger. An empty dicPath uses the
// dictionary from the mecabrc.
func NewLibEngine(dicPath string) (*LibEngine, error) {
	arg := ""
	if dicPath != "" {
		arg = "-d " + dicPath
	}
	cArg := C.CString(arg)
	defer C.free(unsafe.Pointer(cArg))

	ptr := C.mecab_new2(cArg)
	if ptr == nil {
		return nil, errors.Newf("mecab: create tagger: %s", C.GoString(C.mecab_strerror(nil)))
	}
	return &LibEngine{ptr: ptr}, nil
}

type libLattice struct {
	ptr  *C.mecab_lattice_t
	node *C.mecab_node_t
	cur  *C.mecab_node_t
}

func (l *libLattice) Next() bool {
	if l.node == nil {
		return false
	}
	for n := l.node; n != nil; n = n.next {
		if n.stat == C.MECAB_EOS_NODE {
			l.node = nil
			return false
		}
		if n.stat != C.MECAB_BOS_NODE {
			l.cur = n
			l.node = n.next
			return true
		}
	}
	l.node = nil
	return false
}

func (l *libLattice) Surface() string {
	return C.GoStringN(l.cur.surface, C.int(l.cur.length))
}

func (l *libLattice) Feature() string {
	return C.GoString(l.cur.feature)
}

func (l *libLattice) Destroy() {
	if l.ptr != nil {
		C.mecab_lattice_destroy(l.ptr)
		l.ptr = nil
		l.node = nil
		l.cur = nil
	}
}

// NewLattice implements Engine.
func (e *LibEngine) NewLattice(sentence string) (Lattice, error) {
	ptr := C.mecab_lattice_new()
	if ptr == nil {
		return nil, errors.New("mecab: allocate lattice")
	}
	// The lattice must own its sentence: node surfaces point into it.
	C.mecab_lattice_add_request_type(ptr, C.MECAB_ALLOCATE_SENTENCE)

	cSentence := C.CString(sentence)
	defer C.free(unsafe.Pointer(cSentence))
	C.mecab_lattice_set_sentence2(ptr, cSentence, C.size_t(len(sentence)))
	return &libLattice{ptr: ptr}, nil
}

// Parse implements Engine.
func (e *LibEngine) Parse(lat Lattice) bool {
	ll, ok := lat.(*libLattice)
	if !ok || ll.ptr == nil {
		e.err = "lattice was not created by this engine"
		return false
	}
	if C.mecab_parse_lattice(e.ptr, ll.ptr) == 0 {
		e.err = C.GoString(C.mecab_lattice_strerror(ll.ptr))
		if e.err == "" {
			e.err = C.GoString(C.mecab_strerror(e.ptr))
		}
		return false
	}
	ll.node = C.mecab_lattice_get_bos_node(ll.ptr)
	e.err = ""
	return true
}

// What implements Engine.
func (e *LibEngine) What() string {
	return e.err
}

// Close implements Engine.
func (e *LibEngine) Close() error {
	if e.ptr != nil {
		C.mecab_destroy(e.ptr)
		e.ptr = nil
	}
	return nil
}

func newDefaultEngine(dicPath string) (Engine, error) {
	return NewLibEngine(dicPath)
}
