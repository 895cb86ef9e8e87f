// Package osgrid formats British National Grid (EPSG:27700) coordinates as
// Ordnance Survey alphanumeric grid references (e.g. "TQ321813").
package osgrid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// squareSize is the side length of a 100km grid square in metres.
	squareSize = 100_000

	// residualDigits is the width of a fully precise easting or northing
	// residual within a 100km square (0-99999 metres).
	residualDigits = 5

	// MaxFigures is the largest supported total figure count, giving 1m
	// precision (5 digits each for easting and northing).
	MaxFigures = 10

	// DefaultFigures is the conventional 6-figure reference (100m precision).
	DefaultFigures = 6
)

// ErrInvalidFigures is returned when the requested figure count is odd,
// negative, or greater than MaxFigures.
var ErrInvalidFigures = errors.New("figures must be an even number between 0 and 10")

// Options controls how a grid reference is formatted.
type Options struct {
	// Figures is the combined digit count for easting and northing.
	// Must be an even number between 0 and 10; 0 yields the 100km square
	// letters alone.
	Figures int

	// Variable trims trailing zeros from the digit groups, removing the
	// same number of digits from easting and northing so precision stays
	// even across both axes.
	Variable bool

	// Spaces separates the letter pair, easting, and northing with single
	// spaces.
	Spaces bool
}

// DefaultOptions returns the conventional formatting: six figures, fixed
// precision, no spaces.
func DefaultOptions() Options {
	return Options{Figures: DefaultFigures}
}

// Format converts a coordinate pair in EPSG:27700 metres to an OS grid
// reference. Coordinates are assumed to lie within the British National Grid
// extent; behaviour outside it (including negative values) is undefined.
func Format(easting, northing int, opts Options) (string, error) {
	if opts.Figures%2 != 0 || opts.Figures < 0 || opts.Figures > MaxFigures {
		return "", fmt.Errorf("%w: got %d", ErrInvalidFigures, opts.Figures)
	}

	letters := squareLetters(easting/squareSize, northing/squareSize)

	// Pad residuals to full width, then truncate to the most significant
	// digits. Truncation, not rounding: OS references name the square a
	// point falls in.
	figs := opts.Figures / 2
	e := fmt.Sprintf("%0*d", residualDigits, easting%squareSize)[:figs]
	n := fmt.Sprintf("%0*d", residualDigits, northing%squareSize)[:figs]

	if opts.Variable {
		trim := min(trailingZeros(e), trailingZeros(n))
		e = e[:len(e)-trim]
		n = n[:len(n)-trim]
	}

	if opts.Spaces {
		return strings.TrimSpace(letters + " " + e + " " + n), nil
	}
	return letters + e + n, nil
}

// Square returns the two-letter code of the 100km grid square containing the
// given coordinate, e.g. "TQ" for central London.
func Square(easting, northing int) string {
	return squareLetters(easting/squareSize, northing/squareSize)
}

// squareLetters maps 100km grid indices to the OS letter pair. The scheme
// numbers 500km blocks with the first letter and 100km squares within a block
// with the second, reading left to right, top to bottom.
func squareLetters(e100k, n100k int) string {
	l1 := (19 - n100k) - (19-n100k)%5 + (e100k+10)/5
	l2 := ((19-n100k)*5)%25 + e100k%5

	// The OS scheme never uses 'I'; indices past 'H' shift up one letter.
	if l1 > 7 {
		l1++
	}
	if l2 > 7 {
		l2++
	}

	return string([]byte{'A' + byte(l1), 'A' + byte(l2)})
}

// trailingZeros counts trailing '0' characters in a digit string.
func trailingZeros(s string) int {
	return len(s) - len(strings.TrimRight(s, "0"))
}
