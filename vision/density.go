package vision

// Density thresholds. Whitespace is the share of near-background pixels
// (luma >= 240); edges are neighbor pairs whose luminance differs by more
// than 30 on the 0..255 scale.
const (
	whitePixelLuma       = 240.0
	edgeDelta            = 30.0
	clutterEdgeDensity   = 0.30
	clutterWhitespaceMax = 0.15
	sufficientWhitespace = 0.20
)

// analyzeDensity computes whitespace and edge statistics over the resampled
// luminance grid.
func analyzeDensity(luma []float64) map[string]any {
	if len(luma) == 0 {
		return fallbackFeatures()["visual_density"]
	}

	white := 0
	for _, l := range luma {
		if l >= whitePixelLuma {
			white++
		}
	}
	whiteRatio := float64(white) / float64(len(luma))

	// Horizontal and vertical neighbor gradients.
	edges, pairs := 0, 0
	for y := 0; y < analysisSize; y++ {
		for x := 0; x < analysisSize; x++ {
			i := y*analysisSize + x
			if x+1 < analysisSize {
				pairs++
				if diff := luma[i] - luma[i+1]; diff > edgeDelta || diff < -edgeDelta {
					edges++
				}
			}
			if y+1 < analysisSize {
				pairs++
				if diff := luma[i] - luma[i+analysisSize]; diff > edgeDelta || diff < -edgeDelta {
					edges++
				}
			}
		}
	}
	edgeDensity := 0.0
	if pairs > 0 {
		edgeDensity = float64(edges) / float64(pairs)
	}

	return map[string]any{
		"edge_density":              edgeDensity,
		"white_space_ratio":         whiteRatio,
		"is_cluttered":              edgeDensity > clutterEdgeDensity && whiteRatio < clutterWhitespaceMax,
		"has_sufficient_whitespace": whiteRatio >= sufficientWhitespace,
	}
}
