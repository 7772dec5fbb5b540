// Package vision derives visual usability features from a page screenshot.
//
// It is the lightweight build of the image collaborator: no OCR and no
// object detection. The screenshot is decoded, resampled to a fixed
// analysis size and inspected for color distribution, luminance contrast
// and visual density. Concerns that need OCR or detection models emit
// permissive placeholder sub-maps so the scoring engine never penalizes a
// page for data this build cannot observe. Analyze is total: a screenshot
// that fails to decode degrades to the placeholders instead of an error.
package vision

import (
	"bytes"
	"image"
	_ "image/png"

	"golang.org/x/image/draw"
)

// analysisSize is the square edge length images are resampled to before
// analysis. Matches the 200x200 working size of the original pipeline.
const analysisSize = 200

// Features holds the extracted sub-maps, keyed by analysis name
// (e.g. "contrast_analysis"). The values feed score.NewFeatureMap directly.
type Features map[string]map[string]any

// Analyze decodes screenshot and extracts all visual feature sub-maps.
// A decode failure returns the permissive fallback set rather than an error;
// scoring must proceed on HTML features alone.
func Analyze(screenshot []byte) Features {
	img, _, err := image.Decode(bytes.NewReader(screenshot))
	if err != nil {
		return fallbackFeatures()
	}

	small := resample(img)
	luma := luminance(small)

	return Features{
		"color_analysis":      analyzeColors(small),
		"contrast_analysis":   analyzeContrast(luma),
		"visual_density":      analyzeDensity(luma),
		"ocr_analysis":        placeholderOCR(),
		"element_detection":   placeholderElements(),
		"above_fold_analysis": placeholderAboveFold(),
	}
}

// resample scales img to the analysis size. Images already at that size are
// used as-is so unit tests see exact pixel values.
func resample(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, analysisSize, analysisSize))
	if b.Dx() == analysisSize && b.Dy() == analysisSize {
		draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// luminance flattens the resampled image into a row-major slice of Rec. 601
// luma values in 0..255.
func luminance(img *image.RGBA) []float64 {
	luma := make([]float64, 0, analysisSize*analysisSize)
	for y := 0; y < analysisSize; y++ {
		for x := 0; x < analysisSize; x++ {
			off := img.PixOffset(x, y)
			r := float64(img.Pix[off])
			g := float64(img.Pix[off+1])
			b := float64(img.Pix[off+2])
			luma = append(luma, 0.299*r+0.587*g+0.114*b)
		}
	}
	return luma
}

// placeholderOCR stands in for text recognition. The assumed button texts
// keep the CTA text rules from firing on data this build cannot read.
func placeholderOCR() map[string]any {
	return map[string]any{
		"text_blocks":      []string{},
		"total_text_count": 0,
		"button_texts":     []string{"Buy", "Sign up", "Register"},
		"heading_texts":    []string{},
	}
}

// placeholderElements stands in for UI element detection.
func placeholderElements() map[string]any {
	return map[string]any{
		"button_candidates": 3,
		"input_candidates":  2,
		"total_ui_elements": 5,
	}
}

// placeholderAboveFold stands in for above-the-fold content detection.
func placeholderAboveFold() map[string]any {
	return map[string]any{
		"has_cta_above_fold": true,
		"fold_height":        600,
	}
}

// fallbackFeatures is the full permissive set used when the screenshot
// cannot be decoded at all.
func fallbackFeatures() Features {
	return Features{
		"color_analysis": map[string]any{
			"dominant_colors": []DominantColor{},
			"color_variety":   0,
		},
		"contrast_analysis": map[string]any{
			"rms_contrast":       65.0,
			"michelson_contrast": 0.7,
			"dynamic_range":      180.0,
			"mean_intensity":     128.0,
			"has_good_contrast":  true,
			"is_low_contrast":    false,
		},
		"visual_density": map[string]any{
			"edge_density":              0.15,
			"white_space_ratio":         0.35,
			"is_cluttered":              false,
			"has_sufficient_whitespace": true,
		},
		"ocr_analysis":        placeholderOCR(),
		"element_detection":   placeholderElements(),
		"above_fold_analysis": placeholderAboveFold(),
	}
}
