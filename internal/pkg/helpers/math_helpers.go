package helpers

import "strconv"

// Round2 rounds x to two decimal places using the exact binary value of x,
// so exact halves go to the even digit (2.125 => 2.12).
func Round2(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}
