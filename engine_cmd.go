package mecab

import (
	"bufio"
	"bytes"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// DefaultCommand is the executable CommandEngine runs when Path is empty.
const DefaultCommand = "mecab"

// CommandEngine runs the mecab executable once per sentence and reads its
// default output format: one "surface\tfeature" line per node and an "EOS"
// line closing each input line.
type CommandEngine struct {
	// Path is the mecab executable. Empty means DefaultCommand on $PATH.
	Path string
	// DicPath is passed as "-d DicPath" when set.
	DicPath string
	// Args are extra arguments placed before the dictionary option.
	Args []string
	// Env, when non-nil, replaces the child's environment.
	Env []string

	what string
}

var _ Engine = (*CommandEngine)(nil)

// NewCommandEngine returns a CommandEngine using dicPath, or the engine's
// default dictionary when dicPath is empty.
func NewCommandEngine(dicPath string) *CommandEngine {
	return &CommandEngine{DicPath: dicPath}
}

type commandLattice struct {
	sentence string
	nodes    []commandNode
	pos      int
}

type commandNode struct {
	surface string
	feature string
}

func (l *commandLattice) Next() bool {
	if l.pos >= len(l.nodes) {
		return false
	}
	l.pos++
	return true
}

func (l *commandLattice) Surface() string { return l.nodes[l.pos-1].surface }
func (l *commandLattice) Feature() string { return l.nodes[l.pos-1].feature }

func (l *commandLattice) Destroy() {
	l.nodes = nil
}

// NewLattice implements Engine.
func (e *CommandEngine) NewLattice(sentence string) (Lattice, error) {
	return &commandLattice{sentence: sentence}, nil
}

// Parse implements Engine.
func (e *CommandEngine) Parse(lat Lattice) bool {
	cl, ok := lat.(*commandLattice)
	if !ok {
		e.what = "lattice was not created by this engine"
		return false
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(e.command(), e.arguments()...)
	cmd.Stdin = strings.NewReader(cl.sentence + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if e.Env != nil {
		cmd.Env = e.Env
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		e.what = msg
		return false
	}

	nodes, err := parseCommandOutput(stdout.Bytes())
	if err != nil {
		e.what = err.Error()
		return false
	}
	cl.nodes = nodes
	cl.pos = 0
	e.what = ""
	return true
}

// What implements Engine.
func (e *CommandEngine) What() string {
	return e.what
}

// Close implements Engine. The engine holds no resources between calls.
func (e *CommandEngine) Close() error {
	return nil
}

func (e *CommandEngine) command() string {
	if e.Path == "" {
		return DefaultCommand
	}
	return e.Path
}

func (e *CommandEngine) arguments() []string {
	args := append([]string(nil), e.Args...)
	if e.DicPath != "" {
		args = append(args, "-d", e.DicPath)
	}
	return args
}

// parseCommandOutput reads mecab's default output. Every input line ends
// with its own EOS, so EOS lines are skipped rather than treated as the end.
func parseCommandOutput(out []byte) ([]commandNode, error) {
	var nodes []commandNode
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "EOS" || line == "" {
			continue
		}
		surface, feature, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, errors.Newf("unexpected mecab output line %q", line)
		}
		nodes = append(nodes, commandNode{surface: surface, feature: feature})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read mecab output")
	}
	return nodes, nil
}
