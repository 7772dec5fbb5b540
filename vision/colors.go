package vision

import (
	"fmt"
	"image"
	"sort"
)

// DominantColor is one entry of the color frequency ranking.
type DominantColor struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
}

// analyzeColors ranks the resampled image's colors by frequency.
func analyzeColors(img *image.RGBA) map[string]any {
	counts := make(map[uint32]int)
	for y := 0; y < analysisSize; y++ {
		for x := 0; x < analysisSize; x++ {
			off := img.PixOffset(x, y)
			rgb := uint32(img.Pix[off])<<16 | uint32(img.Pix[off+1])<<8 | uint32(img.Pix[off+2])
			counts[rgb]++
		}
	}

	type entry struct {
		rgb   uint32
		count int
	}
	entries := make([]entry, 0, len(counts))
	for rgb, c := range counts {
		entries = append(entries, entry{rgb, c})
	}
	// Count descending, color value as the deterministic tie-break.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].rgb < entries[j].rgb
	})

	total := float64(analysisSize * analysisSize)
	dominant := make([]DominantColor, 0, 5)
	for _, e := range entries {
		if len(dominant) == 5 {
			break
		}
		dominant = append(dominant, DominantColor{
			Hex:        fmt.Sprintf("#%06x", e.rgb),
			Percentage: float64(e.count) / total * 100,
		})
	}

	return map[string]any{
		"dominant_colors":  dominant,
		"color_variety":    len(counts),
		"is_monochromatic": len(counts) < 10,
		"is_colorful":      len(counts) > 100,
	}
}
