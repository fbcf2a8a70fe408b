package mcts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"

	"github.com/gorgonia/connectfour/tree"
)

// ToDot renders tr as a Graphviz DOT document, one table-shaped node per
// arena entry, for offline inspection of a finished search tree. It is a
// diagnostic, not part of Search's return value.
func ToDot(tr *tree.Tree) string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	var buf bytes.Buffer
	tr.Walk(func(n tree.NodeInfo) {
		tmpl.Execute(&buf, n)
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("G", fmt.Sprintf("%d", n.ID), attrs)
		buf.Reset()

		if n.ParentID >= 0 {
			g.AddEdge(fmt.Sprintf("%d", n.ParentID), fmt.Sprintf("%d", n.ID), true, nil)
		}
	})
	return g.String()
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Reward</TD><TD>{{.Reward}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("node").Parse(tmplRaw))
}
