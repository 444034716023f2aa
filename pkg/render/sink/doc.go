// Package sink turns scenes into output formats.
//
// # Overview
//
// Every sink implements [scene.Surface], so a frame is produced by handing
// the surface to [scene.Render]:
//
//   - [Raster]: gg-backed pixels, encoded as PNG or collected into a [GIF]
//   - [Vector]: SVG via svgo
//   - [Terminal]: a character grid for the interactive player
//
// [RenderJSON] exports element state and geometry instead of drawing.
//
// # Usage
//
//	png, err := sink.RenderPNG(adapter.Scene(), adapter.Decorations(), 960, 540)
//	svg := sink.RenderSVG(adapter.Scene(), adapter.Decorations(), 960, 540)
//
//	anim := sink.NewGIF(sink.WithDelay(300), sink.WithPalette(theme))
//	for i := range log.Len() + 1 {
//	    viz.Replay(adapter, log, i)
//	    anim.Add(sink.RenderImage(adapter.Scene(), adapter.Decorations(), 960, 540))
//	}
//	err := anim.Encode(f)
//
// Surfaces are not safe for concurrent use; parallel renderers create one
// per worker.
package sink
