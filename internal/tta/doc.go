// Package tta implements test-time augmentation wrappers.
//
// A wrapper runs its model once per transform on the augmented input,
// reverses each transform on the model output, and merges the
// de-augmented outputs into one prediction:
//
//	set, _ := transforms.Compose(transforms.HorizontalFlips(), rotations)
//	w, err := tta.NewSegmentationWrapper(model, set,
//	    tta.WithMergeMode("mean"),
//	    tta.WithOutputKey("mask"),
//	)
//	if err != nil {
//	    return err
//	}
//	out, err := w.Forward(image)
//
// SegmentationWrapper reverses transforms with DeaugmentMask and suits
// per-pixel outputs. ClassificationWrapper uses DeaugmentLabel and suits
// per-example scores. Both run transforms strictly in order on the calling
// goroutine; ForwardBatch runs independent inputs concurrently.
package tta
