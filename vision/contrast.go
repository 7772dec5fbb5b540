package vision

import "math"

// Contrast thresholds on the 0..255 luma scale. RMS contrast is the standard
// deviation of luminance; a page of black text on white sits around 80-110,
// a washed-out gray page under 20.
const (
	goodContrastRMS  = 40.0
	lowContrastRMS   = 20.0
	lowContrastRange = 60.0
)

// analyzeContrast computes global luminance contrast statistics.
func analyzeContrast(luma []float64) map[string]any {
	if len(luma) == 0 {
		return fallbackFeatures()["contrast_analysis"]
	}

	minL, maxL := luma[0], luma[0]
	sum := 0.0
	for _, l := range luma {
		if l < minL {
			minL = l
		}
		if l > maxL {
			maxL = l
		}
		sum += l
	}
	mean := sum / float64(len(luma))

	variance := 0.0
	for _, l := range luma {
		d := l - mean
		variance += d * d
	}
	variance /= float64(len(luma))
	rms := math.Sqrt(variance)

	michelson := 0.0
	if maxL+minL > 0 {
		michelson = (maxL - minL) / (maxL + minL)
	}
	dynamicRange := maxL - minL

	return map[string]any{
		"rms_contrast":       rms,
		"michelson_contrast": michelson,
		"dynamic_range":      dynamicRange,
		"mean_intensity":     mean,
		"has_good_contrast":  rms >= goodContrastRMS,
		"is_low_contrast":    rms < lowContrastRMS || dynamicRange < lowContrastRange,
	}
}
