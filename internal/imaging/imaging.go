// Package imaging holds the small pixel operations the detectors need:
// thresholded high-contrast copies for OCR and darkness ratios for
// black-frame detection.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// Load decodes a PNG file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Save encodes img as PNG at path.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// Threshold converts img to grayscale and maps every pixel brighter than
// percent of full scale to white and everything else to black.
func Threshold(img image.Image, percent float64) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	cut := uint8(math.Round(percent * 255 / 100))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y > cut {
				out.SetGray(x, y, color.Gray{Y: 0xff})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// HighContrast writes a thresholded copy of src to dst.
func HighContrast(src, dst string, percent float64) error {
	img, err := Load(src)
	if err != nil {
		return err
	}
	return Save(dst, Threshold(img, percent))
}

// DarkRatio returns the fraction of 8-bit R, G and B samples at or below
// threshold. Every channel of every pixel counts once.
func DarkRatio(img image.Image, threshold uint8) float64 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy() * 3
	if total == 0 {
		return 0
	}
	dark := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			for _, v := range [3]uint8{c.R, c.G, c.B} {
				if v <= threshold {
					dark++
				}
			}
		}
	}
	return float64(dark) / float64(total)
}

// IsBlack reports whether more than ratio of img's samples are dark.
func IsBlack(img image.Image, threshold uint8, ratio float64) bool {
	return DarkRatio(img, threshold) > ratio
}
