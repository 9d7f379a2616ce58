package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/sparkfield/internal/field"
)

const (
	charW = 8
	charH = 16
)

func framePalette(params field.Params) color.Palette {
	bg, err := colorful.Hex(string(CurrentTheme.Background))
	if err != nil {
		bg = colorful.Color{}
	}
	pal := color.Palette{bg, params.TrailColor}
	for _, c := range params.Palette {
		pal = append(pal, c)
	}
	return pal
}

// captureFrame rasterises the canvas, one charW x charH block per cell,
// dots coloured with the nearest palette entry.
func captureFrame(c *Canvas, params field.Params) *image.Paletted {
	pal := framePalette(params)
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), pal)

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - brailleBase)
			if pattern == 0 {
				continue
			}
			idx := uint8(pal.Index(c.Colors[row][col].Clamped()))
			if idx == 0 {
				idx = 1
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					x0, y0 := col*charW+dx*dotW, row*charH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(x0+px, y0+py, idx)
						}
					}
				}
			}
		}
	}
	return img
}

func saveGIF(path string, frames []*image.Paletted, fps int) error {
	if len(frames) == 0 {
		return nil
	}
	delay := 100 / max(fps, 1)
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, max(delay, 2))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
