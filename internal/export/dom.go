package export

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Faultbox/scene2css/internal/scene"
)

// RootID is the id of the container div.
const RootID = "root"

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func idAttr(id string) html.Attribute {
	return html.Attribute{Key: "id", Val: id}
}

// dom builds div#root. Nested mode mirrors the tree; collapsed mode puts
// every div directly under the root, each followed by its descendants.
func (w *writer) dom(t *scene.Tree) *html.Node {
	root := element(atom.Div, idAttr(RootID))
	for _, n := range t.Roots {
		w.appendNode(root, n)
	}
	return root
}

func (w *writer) appendNode(parent *html.Node, n *scene.Node) {
	div := element(atom.Div, idAttr(n.Name))
	parent.AppendChild(div)

	into := div
	if w.cfg.CollapseTransforms {
		into = parent
	}
	for _, c := range n.Children {
		w.appendNode(into, c)
	}
}

// page assembles html > head(title, style) + body > root.
func page(title, style string, root *html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	doc.AppendChild(htmlEl)

	head := element(atom.Head)
	htmlEl.AppendChild(head)
	titleEl := element(atom.Title)
	titleEl.AppendChild(text(title))
	head.AppendChild(titleEl)
	styleEl := element(atom.Style)
	styleEl.AppendChild(text(style))
	head.AppendChild(styleEl)

	body := element(atom.Body)
	htmlEl.AppendChild(body)
	body.AppendChild(root)
	return doc
}
