// Package selector matches CSS selectors against document nodes. It backs
// nodeRules and childNodeRules and the attribute conditions of the ARIA
// specification data.
//
// Matching runs on a mirror of the document built with x/net/html nodes so
// that cascadia can evaluate structural pseudo-classes and combinators.
package selector

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/leapmark/pkg/dom"
)

// ErrInvalidSelector is returned for selectors that do not parse.
var ErrInvalidSelector = errors.New("invalid selector")

// Selector is a compiled selector list.
type Selector struct {
	src   string
	group cascadia.SelectorGroup
}

// String returns the selector source.
func (s *Selector) String() string { return s.src }

var (
	cacheMu sync.RWMutex
	cache   = map[string]*Selector{}
)

// Compile parses a selector list such as "div > span, [data-x]". Results
// are cached; a Selector is safe for concurrent use.
func Compile(src string) (*Selector, error) {
	cacheMu.RLock()
	s, ok := cache[src]
	cacheMu.RUnlock()
	if ok {
		return s, nil
	}

	group, err := cascadia.ParseGroup(src)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, src, err)
	}
	s = &Selector{src: src, group: group}

	cacheMu.Lock()
	cache[src] = s
	cacheMu.Unlock()
	return s, nil
}

// Match reports whether the node matches. Only elements can match.
func (s *Selector) Match(x *Index, n dom.Node) bool {
	if !n.IsElement() {
		return false
	}
	h := x.mirror(n)
	return h != nil && s.group.Match(h)
}

// Index holds the matching mirror of one document. It is built on first
// use and safe for concurrent matching afterwards.
type Index struct {
	doc   *dom.Document
	once  sync.Once
	nodes map[dom.NodeID]*html.Node
}

// NewIndex returns an index for doc.
func NewIndex(doc *dom.Document) *Index {
	return &Index{doc: doc}
}

// Match compiles selector and matches it against n.
func (x *Index) Match(n dom.Node, selector string) (bool, error) {
	s, err := Compile(selector)
	if err != nil {
		return false, err
	}
	return s.Match(x, n), nil
}

// MatchFunc returns a function that matches selectors against n, in the
// shape the specification store expects for ARIA conditions.
func (x *Index) MatchFunc(n dom.Node) func(string) (bool, error) {
	return func(selector string) (bool, error) { return x.Match(n, selector) }
}

func (x *Index) mirror(n dom.Node) *html.Node {
	x.once.Do(x.build)
	return x.nodes[n.ID()]
}

func (x *Index) build() {
	x.nodes = make(map[dom.NodeID]*html.Node, x.doc.Len())
	root := &html.Node{Type: html.DocumentNode}
	x.nodes[x.doc.Root().ID()] = root
	x.appendChildren(root, x.doc.Root())
}

func (x *Index) appendChildren(parent *html.Node, n dom.Node) {
	for _, c := range n.ChildNodes() {
		h := convert(c)
		if h == nil {
			continue
		}
		parent.AppendChild(h)
		x.nodes[c.ID()] = h
		if c.IsElement() {
			x.appendChildren(h, c)
		}
	}
}

func convert(n dom.Node) *html.Node {
	switch n.Type() {
	case dom.ElementNode:
		h := &html.Node{Type: html.ElementNode, Data: n.TagNameNormalized()}
		for _, a := range n.Attributes() {
			h.Attr = append(h.Attr, html.Attribute{Key: strings.ToLower(a.PotentialName()), Val: a.ValueRaw()})
		}
		return h
	case dom.TextNode, dom.RawTextNode:
		return &html.Node{Type: html.TextNode, Data: n.Raw()}
	case dom.CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.Raw()}
	case dom.DoctypeNode:
		return &html.Node{Type: html.DoctypeNode, Data: "html"}
	default:
		return nil
	}
}
