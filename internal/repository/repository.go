// Package repository contains data access abstractions for the storefront.
// Implementations live in subpackages (postgres). Lookups that find nothing
// return sql.ErrNoRows; services translate it into domain errors.
package repository

import "errors"

// ErrInsufficientStock is returned when an invoice would drive a product's
// stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// PageQuery holds limit/offset pagination parameters and an optional sort key.
type PageQuery struct {
	Limit  int
	Offset int
	Sort   string
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
