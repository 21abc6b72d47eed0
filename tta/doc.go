// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tta provides test-time augmentation wrappers for segmentation and
// classification models.
//
// A wrapper runs the model once per transform on an augmented copy of the
// input, maps each prediction back to the original geometry, and merges the
// aligned predictions into one output.
//
// # Basic Usage
//
//	set, _ := transforms.Compose(
//	    transforms.HorizontalFlips(),
//	    transforms.Multiplies(1, 2),
//	)
//	w, err := tta.NewSegmentationWrapper(model, set, tta.WithMergeMode("mean"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := w.Forward(image)
//
// # Merge Modes
//
//   - mean: element-wise average
//   - sum: element-wise sum
//   - max, min: element-wise extremum
//   - gmean: geometric mean, the n-th root of the product
//   - tsharpen: mean of square roots
//
// # Output Keys
//
// Models that return several named tensors are wrapped with WithOutputKey.
// The wrapper merges only the named tensor and returns it under the same key.
package tta
