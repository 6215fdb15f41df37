package entity

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ResourceProduct = "product"
	ResourceOrder   = "order"
)

// NotFoundError reports a missing product or order on a single-id lookup.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a create whose id is already taken.
type ConflictError struct {
	Resource string
	ID       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Resource, e.ID)
}

// ProductNotFoundError is returned when an order references an unknown product.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// MalformedInputError wraps a request body that is not JSON at all.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	if e.Err == nil {
		return "malformed JSON body"
	}
	return "malformed JSON body: " + e.Err.Error()
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// PayloadTooLargeError reports a request body over Limit bytes.
type PayloadTooLargeError struct {
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ValidationError maps JSON field paths to what is wrong with them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Err returns e when it holds at least one field, nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// CatalogInconsistencyError means the catalog did not return a product that
// an order references.
type CatalogInconsistencyError struct {
	ProductID string
}

func (e *CatalogInconsistencyError) Error() string {
	return fmt.Sprintf("catalog returned no product for id %s", e.ProductID)
}
