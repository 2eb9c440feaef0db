package diagplot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrClosed is returned when writing a Figure after Close.
var ErrClosed = errors.New("diagplot: figure is closed")

// Figure is a column of vertically tiled plots. A Figure holds no canvas:
// every write renders into a fresh one that is discarded on return.
type Figure struct {
	panels []*plot.Plot
	width  vg.Length
	height vg.Length
}

func newFigure(width, panelHeight vg.Length, panels ...*plot.Plot) *Figure {
	return &Figure{
		panels: panels,
		width:  width,
		height: panelHeight * vg.Length(len(panels)),
	}
}

// Panels returns the number of plots in the figure.
func (f *Figure) Panels() int { return len(f.panels) }

// Size returns the rendered size of the figure.
func (f *Figure) Size() (width, height vg.Length) { return f.width, f.height }

// WriteTo renders the figure as PNG to w.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	if f.panels == nil {
		return 0, ErrClosed
	}

	c := vgimg.New(f.width, f.height)
	f.draw(draw.New(c))

	png := vgimg.PngCanvas{Canvas: c}

	n, err := png.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("diagplot: write png: %w", err)
	}

	return n, nil
}

// Save renders the figure to path. The format follows the file extension:
// png, jpg, jpeg, tif, tiff, svg, pdf, eps or tex.
func (f *Figure) Save(path string) error {
	if f.panels == nil {
		return ErrClosed
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	c, err := draw.NewFormattedCanvas(f.width, f.height, format)
	if err != nil {
		return fmt.Errorf("diagplot: %s: %w", path, err)
	}

	f.draw(draw.New(c))

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("diagplot: %w", err)
	}

	if _, err := c.WriteTo(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("diagplot: write %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("diagplot: %w", err)
	}

	return nil
}

// Close drops the plots held by the figure. Further writes fail with
// ErrClosed. Close is idempotent.
func (f *Figure) Close() error {
	f.panels = nil
	return nil
}

func (f *Figure) draw(dc draw.Canvas) {
	rows := make([][]*plot.Plot, len(f.panels))
	for i, p := range f.panels {
		rows[i] = []*plot.Plot{p}
	}

	tiles := draw.Tiles{
		Rows:      len(f.panels),
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
		PadY:      vg.Points(10),
	}

	canvases := plot.Align(rows, tiles, dc)
	for i, p := range f.panels {
		p.Draw(canvases[i][0])
	}
}
