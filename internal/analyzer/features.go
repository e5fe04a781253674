package analyzer

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/montanaflynn/stats"
)

// FeatureVector holds the scalar features derived from a decoded photo.
// Values keep full float64 precision; rounding happens only at the
// analysis-result boundary.
type FeatureVector struct {
	// ColorFeature is the sum of the per-channel medians (G + B + R),
	// used as the single input to every soil-property classifier.
	ColorFeature float64

	// GraySpread is the population standard deviation of the grayscale
	// intensities, used downstream as a moisture proxy.
	GraySpread float64
}

// DecodeImage decodes raw photo bytes into a pixel grid. Corrupt or
// unsupported data yields an InvalidImageError, never a guess.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &InvalidImageError{Cause: err}
	}
	return img, nil
}

// Extract computes the feature vector from decoded pixels. Pure function:
// no I/O, no randomness, reproducible for identical input.
func Extract(img image.Image) FeatureVector {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()

	red := make([]float64, 0, n)
	green := make([]float64, 0, n)
	blue := make([]float64, 0, n)
	gray := make([]float64, 0, n)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)
			red = append(red, rf)
			green = append(green, gf)
			blue = append(blue, bf)
			// ITU-R BT.601 luma, same weighting OpenCV uses for BGR2GRAY
			gray = append(gray, 0.299*rf+0.587*gf+0.114*bf)
		}
	}

	medG, _ := stats.Median(green)
	medB, _ := stats.Median(blue)
	medR, _ := stats.Median(red)
	spread, _ := stats.StandardDeviationPopulation(gray)

	return FeatureVector{
		ColorFeature: medG + medB + medR,
		GraySpread:   spread,
	}
}
