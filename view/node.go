package view

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

/*

Node is one element of a render tree, the typed replacement for ad-hoc DOM
string templating. Builders always return freshly constructed trees and the
application replaces whole subtrees on every update, there is no diffing or
node reuse.

Tag: element name, empty for a plain text node
Attrs: attribute map, rendered in sorted key order so output is deterministic
Text: inline text, rendered before any children
Children: nested nodes

*/

type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// El constructs an element node.
func El(tag string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

// Text constructs a plain text node.
func Text(text string) *Node {
	return &Node{Text: text}
}

// Textf constructs a plain text node from a format string.
func Textf(format string, args ...interface{}) *Node {
	return &Node{Text: fmt.Sprintf(format, args...)}
}

// Render writes the tree as indented markup. Output is deterministic for a
// given tree, which is what makes fragments assertable in tests.
func Render(w io.Writer, node *Node) {
	render(w, node, 0)
}

func render(w io.Writer, node *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.Tag == "" {
		fmt.Fprintf(w, "%s%s\n", indent, node.Text)
		return
	}

	fmt.Fprintf(w, "%s<%s%s>\n", indent, node.Tag, renderAttrs(node.Attrs))
	if node.Text != "" {
		fmt.Fprintf(w, "%s  %s\n", indent, node.Text)
	}
	for _, child := range node.Children {
		render(w, child, depth+1)
	}
	fmt.Fprintf(w, "%s</%s>\n", indent, node.Tag)
}

func renderAttrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, k, attrs[k])
	}
	return b.String()
}
