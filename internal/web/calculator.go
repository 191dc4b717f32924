package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"spotify-insights/internal/calc"
)

// calcResult is the success body for every calculator route.
type calcResult struct {
	Result float64 `json:"result"`
}

// Add handles POST /add.
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request) {
	h.binaryOp(w, r, func(a, b float64) (float64, error) { return calc.Add(a, b), nil })
}

// AddOptions handles OPTIONS /add with an empty 200, for manual CORS
// pre-flights.
func (h *Handlers) AddOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Subtract handles POST /subtract.
func (h *Handlers) Subtract(w http.ResponseWriter, r *http.Request) {
	h.binaryOp(w, r, func(a, b float64) (float64, error) { return calc.Subtract(a, b), nil })
}

// Multiply handles POST /multiply.
func (h *Handlers) Multiply(w http.ResponseWriter, r *http.Request) {
	h.binaryOp(w, r, func(a, b float64) (float64, error) { return calc.Multiply(a, b), nil })
}

// Square handles POST /square; the only unary route.
func (h *Handlers) Square(w http.ResponseWriter, r *http.Request) {
	params, err := requiredParams(r, "a")
	if err != nil {
		respondClientError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, calcResult{Result: calc.Square(params[0])})
}

// Divide handles POST /divide.
func (h *Handlers) Divide(w http.ResponseWriter, r *http.Request) {
	h.binaryOp(w, r, calc.Divide)
}

// binaryOp decodes the two-parameter body shared by add, subtract,
// multiply, and divide, and renders the result or the 400.
func (h *Handlers) binaryOp(w http.ResponseWriter, r *http.Request, op func(a, b float64) (float64, error)) {
	params, err := requiredParams(r, "a", "b")
	if err != nil {
		respondClientError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := op(params[0], params[1])
	if err != nil {
		if errors.Is(err, calc.ErrDivisionByZero) {
			respondClientError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, calcResult{Result: result})
}

// requiredParams decodes the JSON body and pulls the named parameters in
// order. All missing names are reported together before any coercion is
// attempted.
func requiredParams(r *http.Request, names ...string) ([]float64, error) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return nil, errors.New("Request must be JSON")
	}

	var missing []string
	for _, name := range names {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("Missing required parameters: %s", strings.Join(missing, ", "))
	}

	values := make([]float64, len(names))
	for i, name := range names {
		value, err := toFloat(data[name])
		if err != nil {
			return nil, errors.New("Parameters must be numbers")
		}
		values[i] = value
	}
	return values, nil
}

// toFloat coerces a decoded JSON value: numbers pass through, numeric
// strings parse, everything else is rejected.
func toFloat(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(value), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
