package scaffold

import (
	"strings"
)

// Namespace is a directory level of a scaffold, keyed by cleaned names.
type Namespace struct {
	name     string
	files    map[string]string
	children map[string]*Namespace
}

func newNamespace(name string) *Namespace {
	return &Namespace{
		name:     name,
		files:    make(map[string]string),
		children: make(map[string]*Namespace),
	}
}

func (n *Namespace) add(parts []string, path string) {
	if len(parts) == 1 {
		n.files[CleanName(parts[0])] = path
		return
	}
	key := CleanName(parts[0])
	child, ok := n.children[key]
	if !ok {
		child = newNamespace(key)
		n.children[key] = child
	}
	child.add(parts[1:], path)
}

// Name returns the cleaned directory name; empty for the root.
func (n *Namespace) Name() string { return n.name }

// File returns the path of the file with cleaned name key.
func (n *Namespace) File(key string) (string, bool) {
	p, ok := n.files[key]
	return p, ok
}

// Child returns the sub-namespace with cleaned name key.
func (n *Namespace) Child(key string) (*Namespace, bool) {
	c, ok := n.children[key]
	return c, ok
}

// Files returns the cleaned file names of this level, sorted.
func (n *Namespace) Files() []string { return sortedKeys(n.files) }

// Children returns the cleaned directory names of this level, sorted.
func (n *Namespace) Children() []string { return sortedKeys(n.children) }

// Lookup resolves a dotted path: every segment but the last names a
// directory, the last a file.
func (n *Namespace) Lookup(dotted string) (string, bool) {
	parts := strings.Split(dotted, ".")
	cur := n
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.children[p]
		if !ok {
			return "", false
		}
		cur = next
	}
	return cur.File(parts[len(parts)-1])
}

func (n *Namespace) String() string {
	return "<Namespace " + n.name + ">"
}
