package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	bettererrors "github.com/xtuc/better-errors"
	"golang.org/x/image/tiff"

	"github.com/marsyard/marsyard/common/utils"
)

// heightmap-gen converts a single-band elevation TIFF into the grayscale
// PNG heightmap consumed by the rover server: no-data masking, min/max
// rescale into [0, 255], flat-range fallback to uniform 128.

func main() {
	nodata := flag.Float64("nodata", math.NaN(), "sample value treated as no-data")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Println("Usage: heightmap-gen [-nodata value] <input.tif> <output.png>")
		os.Exit(1)
	}

	err := convertTiffToHeightmap(flag.Arg(0), flag.Arg(1), *nodata)
	if err != nil {
		utils.FailWith(err)
	}
}

func convertTiffToHeightmap(inputPath string, outputPath string, nodata float64) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return bettererrors.
			New("Could not open input TIFF").
			With(bettererrors.NewFromErr(err)).
			SetContext("filename", inputPath)
	}
	defer file.Close()

	img, err := tiff.Decode(file)
	if err != nil {
		return bettererrors.
			New("Could not decode input TIFF").
			With(bettererrors.NewFromErr(err)).
			SetContext("filename", inputPath)
	}

	samples := readSamples(img, nodata)

	stats, err := measure(samples)
	if err != nil {
		return err
	}

	fmt.Println("=== Data Statistics ===")
	fmt.Printf("  Minimum Value: %f\n", stats.min)
	fmt.Printf("  Maximum Value: %f\n", stats.max)
	fmt.Printf("  Mean Value:    %f\n", stats.mean)
	fmt.Printf("  Std. Dev.:     %f\n", stats.stddev)
	fmt.Printf("  Elevation Range: %f\n", stats.max-stats.min)
	fmt.Println("=======================")

	scaled := rescale(samples, stats)

	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	copy(out.Pix, scaled)

	output, err := os.Create(outputPath)
	if err != nil {
		return bettererrors.
			New("Could not create output PNG").
			With(bettererrors.NewFromErr(err)).
			SetContext("filename", outputPath)
	}
	defer output.Close()

	if err := png.Encode(output, out); err != nil {
		return bettererrors.
			New("Could not encode output PNG").
			With(bettererrors.NewFromErr(err)).
			SetContext("filename", outputPath)
	}

	fmt.Println("Saved heightmap to " + outputPath)

	return nil
}

// readSamples flattens the first band row by row; no-data samples become
// NaN so the stats pass can skip them.
func readSamples(img image.Image, nodata float64) []float64 {
	bounds := img.Bounds()
	samples := make([]float64, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			value := float64(gray.Y)

			if !math.IsNaN(nodata) && value == nodata {
				value = math.NaN()
			}

			samples = append(samples, value)
		}
	}

	return samples
}

type sampleStats struct {
	min    float64
	max    float64
	mean   float64
	stddev float64
	valid  int
}

func measure(samples []float64) (sampleStats, error) {
	stats := sampleStats{
		min: math.Inf(1),
		max: math.Inf(-1),
	}

	sum := 0.0
	for _, value := range samples {
		if math.IsNaN(value) {
			continue
		}

		stats.min = math.Min(stats.min, value)
		stats.max = math.Max(stats.max, value)
		sum += value
		stats.valid++
	}

	if stats.valid == 0 {
		return stats, bettererrors.New("No valid samples in input; every pixel is no-data")
	}

	stats.mean = sum / float64(stats.valid)

	variance := 0.0
	for _, value := range samples {
		if math.IsNaN(value) {
			continue
		}

		variance += (value - stats.mean) * (value - stats.mean)
	}

	stats.stddev = math.Sqrt(variance / float64(stats.valid))

	return stats, nil
}

// rescale maps valid samples onto [0, 255]; no-data samples land at 0.
// A flat valid range produces a uniform 128 heightmap.
func rescale(samples []float64, stats sampleStats) []uint8 {
	scaled := make([]uint8, len(samples))

	flat := math.Abs(stats.max-stats.min) < 1e-9

	for i, value := range samples {
		if flat {
			scaled[i] = 128
			continue
		}

		if math.IsNaN(value) {
			scaled[i] = 0
			continue
		}

		normalized := (value - stats.min) / (stats.max - stats.min)
		normalized = math.Max(0, math.Min(1, normalized))

		scaled[i] = uint8(normalized * 255)
	}

	return scaled
}
