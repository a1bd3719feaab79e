package dot

import (
	"encoding/json"
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/buildviz/internal/core/domain"
)

const (
	nbsp      = "&nbsp;"
	lineBreak = `<br align="left"/>`
)

// labeler renders label text, relativizing paths before escaping.
type labeler struct {
	rel      *Relativizer
	settings domain.RenderSettings
}

// text returns s ready for an HTML-like label; blank text becomes a placeholder.
func (l *labeler) text(s string) string {
	if strings.TrimSpace(s) == "" {
		return nbsp
	}
	return html.EscapeString(l.rel.Apply(s))
}

// wrapped returns s word-wrapped, each line terminated by a left-aligned break.
func (l *labeler) wrapped(s string) string {
	if strings.TrimSpace(s) == "" {
		return nbsp
	}
	var sb strings.Builder
	for _, line := range Wrap(l.rel.Apply(s), l.settings.WrapWidth) {
		sb.WriteString(html.EscapeString(line))
		sb.WriteString(lineBreak)
	}
	return sb.String()
}

// heading returns the label of a project or target cluster.
func (l *labeler) heading(title, subtitle string) string {
	var parts []string
	if strings.TrimSpace(title) != "" {
		parts = append(parts, "<b>"+l.text(title)+"</b>")
	}
	if strings.TrimSpace(subtitle) != "" {
		parts = append(parts, "<i>"+l.text(subtitle)+"</i>")
	}
	return strings.Join(parts, "<br/>")
}

// table returns the HTML-like table shown as the label of a task node.
func (l *labeler) table(task *domain.Task) string {
	var sb strings.Builder
	sb.WriteString(`<table cellpadding="5">`)
	fmt.Fprintf(&sb, `<tr><td bgcolor="black" align="center" colspan="2"><font color="white"><b>%s</b></font></td></tr>`,
		l.text(task.Name))
	fmt.Fprintf(&sb, `<tr><td align="center" colspan="2"><i>%s</i></td></tr>`, l.text(task.Location))
	l.row(&sb, "Type", l.text(task.Type.String()))
	l.row(&sb, "FailOnError", boolText(task.FailOnError))

	for _, key := range slices.Sorted(maps.Keys(task.ExtraProperties)) {
		if l.settings.IsExcludedAttribute(key) {
			continue
		}
		l.row(&sb, key, l.value(key, task.ExtraProperties[key]))
	}

	sb.WriteString("</table>")
	return sb.String()
}

func (l *labeler) row(sb *strings.Builder, key, cell string) {
	fmt.Fprintf(sb, `<tr><td align="left">%s</td><td align="left">%s</td></tr>`, html.EscapeString(key), cell)
}

// value renders an extra property. File-like objects show only their full path
// and encodings only their name.
func (l *labeler) value(key string, v any) string {
	if obj, ok := v.(map[string]any); ok {
		if p, ok := obj["FullPath"]; ok {
			return l.text(valueText(p))
		}
		if key == "Encoding" {
			return l.text(valueText(obj["EncodingName"]))
		}
	}
	return l.wrapped(valueText(v))
}

// valueText returns the text form of a JSON-like value. Strings are used as-is;
// everything else is shown as compact JSON.
func valueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return boolText(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

// boolText renders a boolean capitalized, as build hosts print it.
func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
