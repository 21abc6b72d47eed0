// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package transforms provides invertible image transforms for test-time
// augmentation.
//
// Images are laid out with height and width as the last two dimensions,
// for example [N, C, H, W]. Spatial transforms invert exactly on masks of
// the same layout; photometric transforms leave predictions untouched.
package transforms

import (
	"github.com/born-ml/tta/internal/transforms"
)

// Errors returned by transforms.
var (
	ErrRank         = transforms.ErrRank
	ErrInvalidParam = transforms.ErrInvalidParam
)

// Transform is an invertible augmentation.
type Transform = transforms.Transform

// Built-in transforms.
type (
	Identity       = transforms.Identity
	HorizontalFlip = transforms.HorizontalFlip
	VerticalFlip   = transforms.VerticalFlip
	Rotate90       = transforms.Rotate90
	Add            = transforms.Add
	Multiply       = transforms.Multiply
	Chain          = transforms.Chain
)

// NewRotate90 validates angle (a multiple of 90) and returns the transform.
func NewRotate90(angle int) (Rotate90, error) {
	return transforms.NewRotate90(angle)
}

// Name returns a transform's display name.
func Name(t Transform) string {
	return transforms.Name(t)
}

// Compose builds the cartesian product of the given choices. The first list
// varies slowest.
func Compose(choices ...[]Transform) ([]Transform, error) {
	return transforms.Compose(choices...)
}

// HorizontalFlips returns {identity, hflip}.
func HorizontalFlips() []Transform {
	return transforms.HorizontalFlips()
}

// VerticalFlips returns {identity, vflip}.
func VerticalFlips() []Transform {
	return transforms.VerticalFlips()
}

// Rotations returns one Rotate90 per angle.
func Rotations(angles ...int) ([]Transform, error) {
	return transforms.Rotations(angles...)
}

// Adds returns one Add per value.
func Adds(values ...float64) []Transform {
	return transforms.Adds(values...)
}

// Multiplies returns one Multiply per factor.
func Multiplies(factors ...float64) []Transform {
	return transforms.Multiplies(factors...)
}
