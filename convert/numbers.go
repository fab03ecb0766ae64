package convert

import (
	"math"
	"strconv"
	"strings"
)

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}

// ParseCommaFloat parses a decimal number that uses a comma as the
// decimal separator ("142,53").
func ParseCommaFloat(str string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(str, ",", "."), 64)
}
