package stl

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotANumber = errors.New("not a number")

// parseCoordinate decodes one coordinate token. STL writers emit plain
// decimal or exponent notation; "NaN" and Go-only spellings such as
// "inf", hex floats or digit separators are rejected, while the
// "Infinity" spelling some exporters produce is accepted.
func parseCoordinate(word string) (float64, error) {
	if strings.ContainsAny(word, "xXpP_") {
		return 0, errNotANumber
	}
	v, err := strconv.ParseFloat(word, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, errNotANumber
	}
	if math.IsNaN(v) {
		return 0, errNotANumber
	}
	if math.IsInf(v, 0) && strings.TrimLeft(word, "+-") != "Infinity" {
		return 0, errNotANumber
	}
	return v, nil
}
