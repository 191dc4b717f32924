// Package calc implements the arithmetic operations behind the calculator API.
package calc

import "errors"

// ErrDivisionByZero is returned by Divide when the divisor is zero. The text
// is client-visible: the calculator routes send it verbatim.
var ErrDivisionByZero = errors.New("Division by zero is not allowed.")

// Add returns a + b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a - b.
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns a * b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Square returns a squared.
func Square(a float64) float64 {
	return a * a
}

// Divide returns a / b, or ErrDivisionByZero when b is exactly zero.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}
