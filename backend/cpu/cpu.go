// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go kernels behind merge strategies and
// transforms.
package cpu

import (
	internalcpu "github.com/born-ml/tta/internal/backend/cpu"
	"github.com/born-ml/tta/internal/parallel"
)

// Backend executes element-wise tensor kernels on the CPU.
type Backend = internalcpu.CPUBackend

// New creates a CPU backend that splits large tensors across all CPUs.
func New() *Backend {
	return internalcpu.New()
}

// NewSequential creates a CPU backend that never spawns goroutines.
func NewSequential() *Backend {
	return internalcpu.NewWithConfig(parallel.Sequential())
}
