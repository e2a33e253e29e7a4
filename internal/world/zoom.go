package world

import (
	"context"
	"math"
	"math/bits"
)

// ZoomIn doubles the sampling density steps times, centered on grid cell (cx, cy) of the
// current view. Zero steps recenters without changing density; negative steps zoom out.
func (g *Generator) ZoomIn(ctx context.Context, steps, cx, cy int) error {
	if steps < 0 {
		return g.ZoomOut(ctx, -max(steps, -math.MaxInt), cx, cy)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.Captured {
		return ErrStaleExtrema
	}

	steps = min(steps, g.maxZoomLevel-g.zoom)
	w, h := g.width, g.height
	g.zoomCenterX = clampInt((g.zoomCenterX+cx-(w>>1))<<steps, w>>1, (w<<(g.zoom+steps))-(w>>1))
	g.zoomCenterY = clampInt((g.zoomCenterY+cy-(h>>1))<<steps, h>>1, (h<<(g.zoom+steps))-(h>>1))
	g.zoom += steps

	g.regenerate(ctx, g.zoomRegion(), false)
	return nil
}

// ZoomOut halves the sampling density steps times, centered on grid cell (cx, cy) of the
// current view. It does nothing at zoom level 0; negative steps zoom in.
func (g *Generator) ZoomOut(ctx context.Context, steps, cx, cy int) error {
	if steps < 0 {
		return g.ZoomIn(ctx, -max(steps, -math.MaxInt), cx, cy)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.Captured {
		return ErrStaleExtrema
	}

	steps = min(steps, g.zoom)
	if steps == 0 {
		return nil
	}
	w, h := g.width, g.height
	g.zoomCenterX = clampInt((g.zoomCenterX+cx-(w>>1))>>steps, w>>1, (w<<(g.zoom-steps))-(w>>1))
	g.zoomCenterY = clampInt((g.zoomCenterY+cy-(h>>1))>>steps, h>>1, (h<<(g.zoom-steps))-(h>>1))
	g.zoom -= steps

	g.regenerate(ctx, g.zoomRegion(), false)
	return nil
}

// zoomRegion is the source-grid rectangle shown at the current zoom level.
func (g *Generator) zoomRegion() Region {
	w, h := g.width, g.height
	return Region{
		X:      (g.zoomCenterX >> g.zoom) - (w >> (g.zoom + 1)),
		Y:      (g.zoomCenterY >> g.zoom) - (h >> (g.zoom + 1)),
		Width:  w >> g.zoom,
		Height: h >> g.zoom,
	}
}

// maxZoom is the deepest level at which both used dimensions stay at least one cell.
func maxZoom(width, height int) int {
	return min(bits.Len(uint(width)), bits.Len(uint(height))) - 1
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}
