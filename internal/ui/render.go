// File /ui/render.go
package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// 合成负载用的渐变 shader：按像素计算，代价与渲染分辨率成正比
const loadKage = `//kage:unit pixels

package main

var Time float
var Size vec2
var Alpha float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
    p := dstPos.xy / Size
    // 左上亮 → 右下暗，随时间缓慢流动
    t := clamp((p.x + p.y) * 0.5, 0.0, 1.0)
    w := 0.5 + 0.5*sin(Time*1.7 + p.x*12.0 + p.y*7.0)
    c := mix(vec3(0.19, 0.33, 0.50), vec3(0.55, 0.25, 0.60), t)
    return vec4(c * (0.6 + 0.4*w) * Alpha, Alpha)
}
`

var loadShader *ebiten.Shader

// shader 第一次画的时候再编译
func workloadShader() *ebiten.Shader {
	if loadShader == nil {
		s, err := ebiten.NewShader([]byte(loadKage))
		if err != nil {
			panic(err)
		}
		loadShader = s
	}
	return loadShader
}

// passesFor 一帧要叠多少遍全屏 shader；负载越高越多
func passesFor(load float64) int {
	if load <= 0 {
		return 1
	}
	return int(math.Ceil(load * 8))
}

// drawWorkload 在 dst 上叠加 passes 遍全屏 shader
func drawWorkload(dst *ebiten.Image, passes int, seconds float64) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	sh := workloadShader()
	op := &ebiten.DrawRectShaderOptions{}
	op.Uniforms = map[string]any{
		"Time":  float32(seconds),
		"Size":  []float32{float32(w), float32(h)},
		"Alpha": float32(0.2),
	}
	for i := 0; i < passes; i++ {
		op.Uniforms["Time"] = float32(seconds + float64(i)*0.05)
		dst.DrawRectShader(w, h, sh, op)
	}
}

// 只留当前尺寸的一张，分辨率变了就重建
var (
	hexTileImg  *ebiten.Image
	hexTileSize [2]int
)

const hexInset = 0.94 // 留一圈缝

// hexCorners 平顶六边形的六个角，从正右方开始顺时针
func hexCorners(cx, cy, rx, ry float32) [6][2]float32 {
	return [6][2]float32{
		{cx + rx, cy},
		{cx + rx/2, cy + ry},
		{cx - rx/2, cy + ry},
		{cx - rx, cy},
		{cx - rx/2, cy - ry},
		{cx + rx/2, cy - ry},
	}
}

// tileSize 格子高度取 h/rows（至少 4 像素），宽度按正六边形比例
func tileSize(h, rows int) (int, int) {
	th := h / rows
	if th < 4 {
		th = 4
	}
	return int(float64(th) * 2 / math.Sqrt(3)), th
}

// hexTile 背景格子贴图：平顶六边形，宽高贴满 w×h
func hexTile(w, h int, fill color.Color) *ebiten.Image {
	if hexTileImg != nil && hexTileSize == [2]int{w, h} {
		return hexTileImg
	}

	// 2x 超采样，再缩回原大小
	const spp = 2
	W, H := float32(w*spp), float32(h*spp)
	cx, cy := W/2, H/2
	rx, ry := W/2*hexInset, H/2*hexInset

	r, g, b, a := fill.RGBA()
	vtx := func(x, y float32) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: x, DstY: y, SrcX: 0.5, SrcY: 0.5,
			ColorR: float32(r) / 0xffff, ColorG: float32(g) / 0xffff,
			ColorB: float32(b) / 0xffff, ColorA: float32(a) / 0xffff,
		}
	}
	vs := []ebiten.Vertex{vtx(cx, cy)}
	for _, p := range hexCorners(cx, cy, rx, ry) {
		vs = append(vs, vtx(p[0], p[1]))
	}
	is := make([]uint16, 0, 18)
	for i := uint16(1); i <= 6; i++ {
		is = append(is, 0, i, i%6+1)
	}

	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	big := ebiten.NewImage(w*spp, h*spp)
	big.DrawTriangles(vs, is, white, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	tile := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(1.0/spp, 1.0/spp)
	tile.DrawImage(big, op)

	if hexTileImg != nil {
		hexTileImg.Deallocate()
	}
	hexTileImg, hexTileSize = tile, [2]int{w, h}
	return tile
}

// drawHexField 用六边形铺满 dst；格子大小按 dst 高度取，分辨率变化时图案比例不变
func drawHexField(dst *ebiten.Image, rows int) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if rows <= 0 || h <= 0 {
		return
	}
	tileW, tileH := tileSize(h, rows)
	tile := hexTile(tileW, tileH, color.RGBA{49, 83, 127, 0xFF})

	dx := float64(tileW) * 0.75
	vs := float64(tileH)
	for col := 0; float64(col)*dx < float64(w); col++ {
		off := 0.0
		if col%2 == 1 {
			off = vs / 2
		}
		for y := -off; y < float64(h); y += vs {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(col)*dx, y)
			dst.DrawImage(tile, op)
		}
	}
}
