package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodePNG renders img to PNG bytes for Analyze.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// uniformImage is a 200x200 single-color image, sized to skip resampling so
// assertions see exact pixel values.
func uniformImage(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, analysisSize, analysisSize))
	for y := 0; y < analysisSize; y++ {
		for x := 0; x < analysisSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// checkerboard alternates two colors per pixel, the worst case for edge
// density.
func checkerboard(a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, analysisSize, analysisSize))
	for y := 0; y < analysisSize; y++ {
		for x := 0; x < analysisSize; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

func TestAnalyze_UniformWhitePage(t *testing.T) {
	// WHAT: A flat white screenshot has zero contrast, full whitespace and a
	// single dominant color.
	// WHY: The low-contrast flag must fire on flat pages, and the whitespace
	// flag must not.
	f := Analyze(encodePNG(t, uniformImage(color.RGBA{255, 255, 255, 255})))

	contrast := f["contrast_analysis"]
	if good, _ := contrast["has_good_contrast"].(bool); good {
		t.Error("has_good_contrast = true for flat image")
	}
	if low, _ := contrast["is_low_contrast"].(bool); !low {
		t.Error("is_low_contrast = false for flat image")
	}

	density := f["visual_density"]
	if ws, _ := density["white_space_ratio"].(float64); ws != 1.0 {
		t.Errorf("white_space_ratio = %v, want 1.0", ws)
	}
	if cl, _ := density["is_cluttered"].(bool); cl {
		t.Error("is_cluttered = true for blank page")
	}
	if ok, _ := density["has_sufficient_whitespace"].(bool); !ok {
		t.Error("has_sufficient_whitespace = false for blank page")
	}

	colors := f["color_analysis"]
	if v, _ := colors["color_variety"].(int); v != 1 {
		t.Errorf("color_variety = %v, want 1", v)
	}
	if mono, _ := colors["is_monochromatic"].(bool); !mono {
		t.Error("is_monochromatic = false for single-color image")
	}
	dominant, _ := colors["dominant_colors"].([]DominantColor)
	if len(dominant) != 1 || dominant[0].Hex != "#ffffff" || dominant[0].Percentage != 100 {
		t.Errorf("dominant_colors = %v, want single #ffffff at 100%%", dominant)
	}
}

func TestAnalyze_ClutteredCheckerboard(t *testing.T) {
	// WHAT: A per-pixel black/gray checkerboard maxes out edge density with
	// no whitespace.
	// WHY: is_cluttered requires both high edges and low whitespace.
	black := color.RGBA{0, 0, 0, 255}
	gray := color.RGBA{128, 128, 128, 255}
	f := Analyze(encodePNG(t, checkerboard(black, gray)))

	density := f["visual_density"]
	if ed, _ := density["edge_density"].(float64); ed != 1.0 {
		t.Errorf("edge_density = %v, want 1.0", ed)
	}
	if cl, _ := density["is_cluttered"].(bool); !cl {
		t.Error("is_cluttered = false, want true")
	}
	if ok, _ := density["has_sufficient_whitespace"].(bool); ok {
		t.Error("has_sufficient_whitespace = true with zero white pixels")
	}

	// Half black half gray gives RMS contrast 64 and full Michelson.
	contrast := f["contrast_analysis"]
	if good, _ := contrast["has_good_contrast"].(bool); !good {
		t.Error("has_good_contrast = false, want true")
	}
	if low, _ := contrast["is_low_contrast"].(bool); low {
		t.Error("is_low_contrast = true, want false")
	}
	if m, _ := contrast["michelson_contrast"].(float64); m != 1.0 {
		t.Errorf("michelson_contrast = %v, want 1.0", m)
	}
}

func TestAnalyze_DominantColorOrder(t *testing.T) {
	// WHAT: Equal-count colors rank by color value.
	// WHY: Reports must be byte-identical across runs; map iteration order
	// must not leak into the ranking.
	img := image.NewRGBA(image.Rect(0, 0, analysisSize, analysisSize))
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	for y := 0; y < analysisSize; y++ {
		for x := 0; x < analysisSize; x++ {
			if y < analysisSize/2 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}

	for i := 0; i < 5; i++ {
		f := Analyze(encodePNG(t, img))
		dominant, _ := f["color_analysis"]["dominant_colors"].([]DominantColor)
		if len(dominant) != 2 {
			t.Fatalf("dominant_colors = %v, want 2 entries", dominant)
		}
		if dominant[0].Hex != "#0000ff" || dominant[1].Hex != "#ff0000" {
			t.Fatalf("order = [%s %s], want [#0000ff #ff0000]", dominant[0].Hex, dominant[1].Hex)
		}
		if dominant[0].Percentage != 50 {
			t.Fatalf("percentage = %v, want 50", dominant[0].Percentage)
		}
	}
}

func TestAnalyze_DecodeFailureFallsBack(t *testing.T) {
	// WHAT: Garbage bytes produce the permissive placeholder set.
	// WHY: A broken screenshot must never fail or penalize the analysis.
	f := Analyze([]byte("not a png"))

	if good, _ := f["contrast_analysis"]["has_good_contrast"].(bool); !good {
		t.Error("fallback has_good_contrast = false, want true")
	}
	if cta, _ := f["above_fold_analysis"]["has_cta_above_fold"].(bool); !cta {
		t.Error("fallback has_cta_above_fold = false, want true")
	}
	if texts, _ := f["ocr_analysis"]["button_texts"].([]string); len(texts) == 0 {
		t.Error("fallback button_texts empty, want assumed CTA texts")
	}
	if cl, _ := f["visual_density"]["is_cluttered"].(bool); cl {
		t.Error("fallback is_cluttered = true, want false")
	}
}

func TestAnalyze_ResamplesLargeImages(t *testing.T) {
	// WHAT: A full-size screenshot is resampled and produces every sub-map.
	// WHY: Real captures arrive at viewport resolution, not 200x200.
	img := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	for y := 0; y < 1080; y++ {
		for x := 0; x < 1920; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 200, 255})
		}
	}
	f := Analyze(encodePNG(t, img))

	for _, name := range []string{
		"color_analysis", "contrast_analysis", "visual_density",
		"ocr_analysis", "element_detection", "above_fold_analysis",
	} {
		if _, ok := f[name]; !ok {
			t.Errorf("missing sub-map %q", name)
		}
	}
	if v, _ := f["color_analysis"]["color_variety"].(int); v < 2 {
		t.Errorf("color_variety = %v, want gradient to survive resampling", v)
	}
}
