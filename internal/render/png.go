package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// PNG is a raster Canvas backed by a gg context. Canvas methods cannot
// fail, so the first drawing error is kept and returned by Err, EncodePNG
// and Save.
type PNG struct {
	view View
	dc   *gg.Context
	font *text.FontSource
	err  error
}

// NewPNG allocates a raster canvas covering v.
func NewPNG(v View) *PNG {
	w, h := v.Pixels()
	return &PNG{view: v, dc: gg.NewContext(w, h)}
}

func (c *PNG) View() View { return c.view }

// Err returns the first error met while drawing.
func (c *PNG) Err() error { return c.err }

func (c *PNG) fail(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}

// px maps world coordinates to pixels.
func (c *PNG) px(x, y float64) (float64, float64) {
	v := c.view
	return (x - v.X) * v.Scale, (v.Y + v.Height - y) * v.Scale
}

func (c *PNG) color(hex string, alpha float64) {
	col := gg.Hex(hex)
	c.dc.SetRGBA(col.R, col.G, col.B, col.A*alpha)
}

func (c *PNG) Clear(color string, opacity float64) {
	col := gg.Hex(color)
	col.A *= opacity
	c.dc.ClearWithColor(col)
}

func (c *PNG) Image(file string, x, y, w, h float64) error {
	img, err := gg.LoadImage(file)
	if err != nil {
		return err
	}
	px, py := c.px(x, y+h)
	c.dc.DrawImageEx(img, gg.DrawImageOptions{
		X:         px,
		Y:         py,
		DstWidth:  w * c.view.Scale,
		DstHeight: h * c.view.Scale,
		Opacity:   1,
	})
	return nil
}

// trace replays p into the gg path, converting arcs to cubics.
func (c *PNG) trace(p *Path) {
	c.dc.ClearPath()
	for _, op := range p.ops {
		switch op.kind {
		case opMove:
			c.dc.MoveTo(c.px(op.p[0][0], op.p[0][1]))
		case opLine:
			c.dc.LineTo(c.px(op.p[0][0], op.p[0][1]))
		case opCubic:
			x1, y1 := c.px(op.p[0][0], op.p[0][1])
			x2, y2 := c.px(op.p[1][0], op.p[1][1])
			x3, y3 := c.px(op.p[2][0], op.p[2][1])
			c.dc.CubicTo(x1, y1, x2, y2, x3, y3)
		case opArc:
			for _, seg := range arcCubics(op.p[0][0], op.p[0][1], op.r, op.from, op.sweep) {
				x1, y1 := c.px(seg[0][0], seg[0][1])
				x2, y2 := c.px(seg[1][0], seg[1][1])
				x3, y3 := c.px(seg[2][0], seg[2][1])
				c.dc.CubicTo(x1, y1, x2, y2, x3, y3)
			}
		case opClose:
			c.dc.ClosePath()
		}
	}
}

func (c *PNG) Draw(p *Path, s Style) {
	if len(p.ops) == 0 {
		return
	}
	if s.Fill != "" {
		c.trace(p)
		c.color(s.Fill, s.fillOpacity())
		if err := c.dc.Fill(); err != nil {
			c.fail(fmt.Errorf("fill: %w", err))
		}
	}
	if s.Stroke != "" {
		c.trace(p)
		c.color(s.Stroke, 1)
		c.dc.SetLineWidth(s.Width * c.view.Scale)
		dash := make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = d * c.view.Scale
		}
		c.dc.SetDash(dash...)
		if err := c.dc.Stroke(); err != nil {
			c.fail(fmt.Errorf("stroke: %w", err))
		}
	}
}

// Text renders with the Go regular font. Sizes are in meters like
// everything else on the canvas.
func (c *PNG) Text(x, y, size float64, color string, lines ...string) {
	if c.font == nil {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			c.fail(fmt.Errorf("label font: %w", err))
			return
		}
		c.font = src
	}
	px := size * c.view.Scale
	c.dc.SetFont(c.font.Face(px))
	c.color(color, 1)
	bx, by := c.px(x, y)
	for i, l := range lines {
		c.dc.DrawString(l, bx, by+float64(i)*px*1.2)
	}
}

// EncodePNG writes the raster as PNG. It writes nothing if drawing failed.
func (c *PNG) EncodePNG(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	return c.dc.EncodePNG(w)
}

// Save writes the raster to path. It writes nothing if drawing failed.
func (c *PNG) Save(path string) error {
	if c.err != nil {
		return c.err
	}
	return c.dc.SavePNG(path)
}

// Close releases the context.
func (c *PNG) Close() error { return c.dc.Close() }
