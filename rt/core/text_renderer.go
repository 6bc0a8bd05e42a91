package core

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const atlasSize = 512

// GlyphVertex matches the vertex input of text.wgsl.
type GlyphVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// TextLine is a run of text anchored at a pixel position (top-left origin).
type TextLine struct {
	Text     string
	Position [2]float32
	Scale    float32
	Color    [4]float32
}

type glyph struct {
	uvMin [2]float32
	uvMax [2]float32
	size  [2]float32
	off   [2]float32
	adv   float32
}

// TextRenderer rasterizes printable ASCII into a single-channel atlas once
// and turns text lines into screen-space quads.
type TextRenderer struct {
	Atlas  *image.Alpha
	glyphs map[rune]glyph
	face   font.Face
}

// NewDefaultTextRenderer uses the Go Regular font shipped with x/image.
func NewDefaultTextRenderer(size float64) (*TextRenderer, error) {
	return NewTextRenderer(goregular.TTF, size)
}

func NewTextRenderer(fontData []byte, size float64) (*TextRenderer, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	atlas := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]glyph)

	x, y := 2, 2
	rowHeight := 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := mask.Bounds().Dx()
		h := mask.Bounds().Dy()
		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= atlasSize {
			break
		}

		draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, draw.Src)

		glyphs[r] = glyph{
			uvMin: [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			uvMax: [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			size:  [2]float32{float32(w), float32(h)},
			off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			adv:   float32(adv) / 64.0,
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	return &TextRenderer{
		Atlas:  atlas,
		glyphs: glyphs,
		face:   face,
	}, nil
}

func (tr *TextRenderer) HasGlyph(r rune) bool {
	_, ok := tr.glyphs[r]
	return ok
}

// advance is the pen advance of runes without atlas entries, such as space.
func (tr *TextRenderer) advance(r rune) float32 {
	adv, ok := tr.face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return float32(adv) / 64.0
}

// BuildVertices emits two triangles per visible glyph in clip space.
func (tr *TextRenderer) BuildVertices(lines []TextLine, screenW, screenH int) []GlyphVertex {
	vertices := make([]GlyphVertex, 0, len(lines)*6*16)
	if screenW <= 0 || screenH <= 0 {
		return vertices
	}

	sw := float32(screenW)
	sh := float32(screenH)
	metrics := tr.face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineHeight := float32(metrics.Height.Ceil())

	for _, line := range lines {
		startX := line.Position[0]
		penX := startX
		penY := line.Position[1] + ascent*line.Scale

		for _, r := range line.Text {
			if r == '\n' {
				penX = startX
				penY += lineHeight * line.Scale
				continue
			}

			g, ok := tr.glyphs[r]
			if !ok {
				penX += tr.advance(r) * line.Scale
				continue
			}

			x0 := (penX+g.off[0]*line.Scale)/sw*2.0 - 1.0
			y0 := 1.0 - (penY+g.off[1]*line.Scale)/sh*2.0
			x1 := (penX+(g.off[0]+g.size[0])*line.Scale)/sw*2.0 - 1.0
			y1 := 1.0 - (penY+(g.off[1]+g.size[1])*line.Scale)/sh*2.0

			vertices = append(vertices,
				GlyphVertex{Pos: [2]float32{x0, y0}, UV: [2]float32{g.uvMin[0], g.uvMin[1]}, Color: line.Color},
				GlyphVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: line.Color},
				GlyphVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: line.Color},
				GlyphVertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: line.Color},
				GlyphVertex{Pos: [2]float32{x1, y1}, UV: [2]float32{g.uvMax[0], g.uvMax[1]}, Color: line.Color},
				GlyphVertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: line.Color},
			)

			penX += g.adv * line.Scale
		}
	}

	return vertices
}

// MeasureText returns the pixel width and height of text at the given scale.
func (tr *TextRenderer) MeasureText(text string, scale float32) (float32, float32) {
	if tr == nil {
		return 0, 0
	}

	lineHeight := float32(tr.face.Metrics().Height.Ceil())
	maxW := float32(0)
	currentW := float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			if currentW > maxW {
				maxW = currentW
			}
			currentW = 0
			lines++
			continue
		}
		if g, ok := tr.glyphs[r]; ok {
			currentW += g.adv * scale
		} else {
			currentW += tr.advance(r) * scale
		}
	}
	if currentW > maxW {
		maxW = currentW
	}

	return maxW, lineHeight * scale * float32(lines)
}
