package dice

import "strings"

// SecretLength is the number of digits in an obscured roll.
const SecretLength = 12

// Positions of the true tens and units digits inside an obscured roll.
const (
	SecretTensIndex  = 2
	SecretUnitsIndex = 4
)

// Obscure hides total inside SecretLength random digits: the tens digit at
// SecretTensIndex and the units digit at SecretUnitsIndex. A total of 100 is
// embedded as 0 and 0.
//
// Postcondition: len(result) == SecretLength; every byte is an ASCII digit.
func Obscure(total int, src Source) string {
	tens := floorMod(floorDiv(total, 10), 10)
	units := floorMod(total, 10)
	if total == 100 {
		tens, units = 0, 0
	}

	digits := make([]byte, SecretLength)
	for i := range digits {
		digits[i] = byte('0' + src.Intn(10))
	}
	digits[SecretTensIndex] = byte('0' + tens)
	digits[SecretUnitsIndex] = byte('0' + units)
	return string(digits)
}

// Reveal recovers the two embedded digits of an obscured roll as "TU".
//
// Precondition: len(secret) == SecretLength.
func Reveal(secret string) string {
	var b strings.Builder
	b.WriteByte(secret[SecretTensIndex])
	b.WriteByte(secret[SecretUnitsIndex])
	return b.String()
}

// floorDiv and floorMod round toward negative infinity so that a negative total
// still yields digits in [0, 9].
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
