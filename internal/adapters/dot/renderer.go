// Package dot renders recorded builds as GraphViz DOT graphs.
package dot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphRenderer = (*Renderer)(nil)

// Renderer implements ports.GraphRenderer.
//
// Each project becomes a cluster, each target with at least one visible task a
// nested cluster, and each visible task a node labelled with an HTML-like table.
// A single edge chain links the visible tasks in global start order.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the graph of build to w. The graph is built in memory first, so
// nothing is written when rendering fails.
func (r *Renderer) Render(w io.Writer, build *domain.Build, settings domain.RenderSettings) error {
	if build == nil {
		return zerr.With(domain.ErrRenderFailed, "reason", "no build")
	}
	if settings.WrapWidth < 1 {
		settings.WrapWidth = domain.DefaultWrapWidth
	}

	g := &graph{
		build:    build,
		settings: settings,
		labels: &labeler{
			rel:      NewRelativizer(CommonRoot(build.Projects)),
			settings: settings,
		},
		ids: make(map[*domain.Task]int, len(build.TaskOrder)),
	}
	for i, t := range build.TaskOrder {
		g.ids[t] = i
	}

	var buf bytes.Buffer
	g.write(&buf)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return zerr.Wrap(err, domain.ErrRenderFailed.Error())
	}
	return nil
}

type graph struct {
	build    *domain.Build
	settings domain.RenderSettings
	labels   *labeler
	ids      map[*domain.Task]int
}

func (g *graph) visible(t *domain.Task) bool {
	return !g.settings.IsExcludedTaskType(t.Type.String())
}

func (g *graph) write(buf *bytes.Buffer) {
	buf.WriteString("digraph build {\n")

	for i, p := range g.build.Projects {
		g.writeProject(buf, i, p)
	}

	var chain []string
	for i, t := range g.build.TaskOrder {
		if g.visible(t) {
			chain = append(chain, nodeID(i))
		}
	}
	if len(chain) > 1 {
		fmt.Fprintf(buf, "    %s;\n", strings.Join(chain, " -> "))
	}

	buf.WriteString("}\n")
}

func (g *graph) writeProject(buf *bytes.Buffer, index int, p *domain.Project) {
	fmt.Fprintf(buf, "    subgraph clusterProject%d {\n", index)
	writeLabel(buf, "        ", g.labels.heading(p.ProjectName, p.BuildFileLocalName))

	for ti, target := range p.Targets {
		var tasks []*domain.Task
		for _, t := range p.TasksOf(target) {
			if g.visible(t) {
				tasks = append(tasks, t)
			}
		}
		if len(tasks) == 0 {
			continue
		}

		fmt.Fprintf(buf, "        subgraph clusterProject%dTarget%d {\n", index, ti)
		writeLabel(buf, "            ", g.labels.heading(target.Name, target.Location))
		for _, t := range tasks {
			g.writeTask(buf, "            ", t)
		}
		buf.WriteString("        }\n")
	}

	for _, t := range p.TasksOf(nil) {
		if g.visible(t) {
			g.writeTask(buf, "        ", t)
		}
	}

	buf.WriteString("    }\n")
}

func (g *graph) writeTask(buf *bytes.Buffer, indent string, t *domain.Task) {
	fmt.Fprintf(buf, "%s%s [\n", indent, nodeID(g.ids[t]))
	fmt.Fprintf(buf, "%s    shape=none\n", indent)
	fmt.Fprintf(buf, "%s    label=<%s>\n", indent, g.labels.table(t))
	fmt.Fprintf(buf, "%s]\n", indent)
}

func writeLabel(buf *bytes.Buffer, indent, label string) {
	if label == "" {
		fmt.Fprintf(buf, "%slabel=\"\";\n", indent)
		return
	}
	fmt.Fprintf(buf, "%slabel=<%s>;\n", indent, label)
}

func nodeID(index int) string {
	return fmt.Sprintf("task%d", index)
}
