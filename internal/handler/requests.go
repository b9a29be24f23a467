package handler

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LenientInt accepts numbers, numeric strings, or garbage. Anything that does
// not parse as a non-negative integer normalizes to 0 instead of erroring,
// matching the permissive intake policy for catalog fields.
type LenientInt int

func (n *LenientInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	v, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			v = int(f)
		} else {
			v = 0
		}
	}
	if v < 0 {
		v = 0
	}
	*n = LenientInt(v)
	return nil
}

// LenientDecimal is the money counterpart of LenientInt: invalid or negative
// input normalizes to 0.
type LenientDecimal struct {
	decimal.Decimal
}

func (d *LenientDecimal) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	dec, err := decimal.NewFromString(s)
	if err != nil || dec.IsNegative() {
		dec = decimal.Zero
	}
	d.Decimal = dec
	return nil
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Unit         string         `json:"unit"`
	Quantity     LenientInt     `json:"quantity"`
	SellingPrice LenientDecimal `json:"sellingPrice"`
	CostPrice    LenientDecimal `json:"costPrice"`
}

// UpdateProductRequest is the body of PUT /products/:id. Absent fields are left
// untouched.
type UpdateProductRequest struct {
	Name         *string         `json:"name"`
	Category     *string         `json:"category"`
	Unit         *string         `json:"unit"`
	Quantity     *LenientInt     `json:"quantity"`
	SellingPrice *LenientDecimal `json:"sellingPrice"`
	CostPrice    *LenientDecimal `json:"costPrice"`
}

// RecordTransactionRequest is the body of POST /transactions.
type RecordTransactionRequest struct {
	ProductID string         `json:"productId"`
	Type      string         `json:"type"`
	Quantity  LenientInt     `json:"quantity"`
	UnitPrice LenientDecimal `json:"unitPrice"`
	Note      string         `json:"note"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
