package render

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SVG is a Canvas producing an SVG document. World y is flipped so the
// document keeps the usual y-down orientation; one SVG user unit is one
// meter and the document size in pixels is set from the view scale.
type SVG struct {
	view View
	body bytes.Buffer
}

// NewSVG returns an empty SVG canvas for v.
func NewSVG(v View) *SVG {
	return &SVG{view: v}
}

func (c *SVG) View() View { return c.view }

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pt maps world coordinates to SVG user space.
func (c *SVG) pt(x, y float64) string {
	return num(x) + " " + num(c.view.Y+c.view.Height-y)
}

func (c *SVG) Clear(color string, opacity float64) {
	v := c.view
	fmt.Fprintf(&c.body, `<rect x="%s" y="0" width="%s" height="%s" fill="%s" fill-opacity="%s"/>`+"\n",
		num(v.X), num(v.Width), num(v.Height), attr(color), num(opacity))
}

// Image embeds the file as a data URI.
func (c *SVG) Image(file string, x, y, w, h float64) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	typ := mime.TypeByExtension(strings.ToLower(filepath.Ext(file)))
	if typ == "" {
		typ = "image/png"
	}
	fmt.Fprintf(&c.body, `<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" href="data:%s;base64,%s"/>`+"\n",
		num(x), num(c.view.Y+c.view.Height-(y+h)), num(w), num(h), typ, base64.StdEncoding.EncodeToString(data))
	return nil
}

func (c *SVG) Draw(p *Path, s Style) {
	var d strings.Builder
	for _, op := range p.ops {
		if d.Len() > 0 {
			d.WriteByte(' ')
		}
		switch op.kind {
		case opMove:
			d.WriteString("M " + c.pt(op.p[0][0], op.p[0][1]))
		case opLine:
			d.WriteString("L " + c.pt(op.p[0][0], op.p[0][1]))
		case opCubic:
			d.WriteString("C " + c.pt(op.p[0][0], op.p[0][1]) + " " + c.pt(op.p[1][0], op.p[1][1]) + " " + c.pt(op.p[2][0], op.p[2][1]))
		case opArc:
			c.arc(&d, op)
		case opClose:
			d.WriteString("Z")
		}
	}
	if d.Len() == 0 {
		return
	}

	fill := s.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(&c.body, `<path d="%s" fill="%s"`, d.String(), attr(fill))
	if s.Fill != "" && s.FillOpacity != 0 {
		fmt.Fprintf(&c.body, ` fill-opacity="%s"`, num(s.FillOpacity))
	}
	if s.Stroke != "" {
		fmt.Fprintf(&c.body, ` stroke="%s" stroke-width="%s"`, attr(s.Stroke), num(s.Width))
		if len(s.Dash) > 0 {
			dash := make([]string, len(s.Dash))
			for i, v := range s.Dash {
				dash[i] = num(v)
			}
			fmt.Fprintf(&c.body, ` stroke-dasharray="%s"`, strings.Join(dash, ","))
		}
	}
	c.body.WriteString("/>\n")
}

// arc writes op as elliptical arc commands. Sweeps beyond a half turn are
// split so the large-arc flag is never needed.
func (c *SVG) arc(d *strings.Builder, op pathOp) {
	n := int(math.Ceil(math.Abs(op.sweep) / 180))
	if n == 0 {
		return
	}
	// The y flip mirrors the turning sense: counter-clockwise in the world is
	// sweep-flag 0 in SVG.
	flag := "0"
	if op.sweep < 0 {
		flag = "1"
	}
	cx, cy := op.p[0][0], op.p[0][1]
	for i := 1; i <= n; i++ {
		a := (op.from + op.sweep*float64(i)/float64(n)) * math.Pi / 180
		s, co := math.Sincos(a)
		if i > 1 {
			d.WriteByte(' ')
		}
		fmt.Fprintf(d, "A %s %s 0 0 %s %s", num(op.r), num(op.r), flag, c.pt(cx+op.r*co, cy+op.r*s))
	}
}

func (c *SVG) Text(x, y, size float64, color string, lines ...string) {
	fmt.Fprintf(&c.body, `<text x="%s" y="%s" font-size="%s" font-family="sans-serif" fill="%s">`,
		num(x), num(c.view.Y+c.view.Height-y), num(size), attr(color))
	for i, l := range lines {
		dy := "0"
		if i > 0 {
			dy = "1.2em"
		}
		fmt.Fprintf(&c.body, `<tspan x="%s" dy="%s">`, num(x), dy)
		_ = xml.EscapeText(&c.body, []byte(l))
		c.body.WriteString("</tspan>")
	}
	c.body.WriteString("</text>\n")
}

// WriteTo writes the complete document.
func (c *SVG) WriteTo(w io.Writer) (int64, error) {
	v := c.view
	pw, ph := v.Pixels()
	var head bytes.Buffer
	head.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&head, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%s 0 %s %s">`+"\n",
		pw, ph, num(v.X), num(v.Width), num(v.Height))

	var total int64
	for _, b := range [][]byte{head.Bytes(), c.body.Bytes(), []byte("</svg>\n")} {
		n, err := w.Write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Save writes the document to path.
func (c *SVG) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func attr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
