package gompc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// SavePNG renders p to a PNG file at 300 DPI, creating the directory if
// needed.
func SavePNG(p *plot.Plot, w, h vg.Length, path string) error {
	c := newCanvas(w, h)
	p.Draw(draw.New(c))
	return writePNG(c, path)
}

// SaveColumn renders the subplots returned by the time-series functions as
// one vertically aligned column.
func SaveColumn(plots []*plot.Plot, w, h vg.Length, path string) error {
	if len(plots) == 0 {
		return fmt.Errorf("save column: %w", ErrNoData)
	}
	c := newCanvas(w, h)
	dc := draw.New(c)

	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(rows, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}
	return writePNG(c, path)
}

// SaveWithColorBar renders p with a vertical color bar for cm in a strip on
// the right.
func SaveWithColorBar(p *plot.Plot, cm palette.ColorMap, w, h vg.Length, path string) error {
	bar := plot.New()
	cb := &plotter.ColorBar{ColorMap: cm}
	cb.Vertical = true
	bar.Add(cb)
	bar.HideX()

	c := newCanvas(w, h)
	dc := draw.New(c)
	barW := w / 6
	p.Draw(draw.Crop(dc, 0, -barW, 0, 0))
	bar.Draw(draw.Crop(dc, w-barW, 0, 0, 0))
	return writePNG(c, path)
}

func newCanvas(w, h vg.Length) *vgimg.Canvas {
	return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(300))
}

func writePNG(c *vgimg.Canvas, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}
