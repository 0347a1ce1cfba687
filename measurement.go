package slideshow

import "math"

// EMU (English Metric Units): 1 inch = 914400 EMU.

const (
	emuPerInch = 914400
	// maxEMU is the largest ST_PositiveCoordinate; it bounds conversions.
	maxEMU = 27273042316900
)

// Slide sizes PowerPoint accepts for p:sldSz (ST_SlideSizeCoordinate),
// 1in to 56in per side.
const (
	MinSlideEMU = 914400
	MaxSlideEMU = 51206400
)

// Inch converts inches to EMU.
func Inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// clampEMU rounds v to the nearest EMU and clamps it into [-maxEMU, maxEMU].
func clampEMU(v float64) int64 {
	if v > maxEMU {
		return maxEMU
	}
	if v < -maxEMU {
		return -maxEMU
	}
	return int64(math.Round(v))
}
