// Package mocks holds testify mocks of the service interfaces.
package mocks

import "github.com/stretchr/testify/mock"

// result unpacks a (T, error) return, tolerating a nil first value.
func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}
