//go:build !cgo

package hal

import "context"

func RunWindow(_ context.Context, _ WindowConfig, _ func(HAL) func() error) error {
	return ErrNoDisplay
}
