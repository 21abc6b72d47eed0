// Package merge combines a known number of same-shaped tensors into one.
//
// A Merger is created for a fixed strategy and count, receives exactly that
// many Append calls, and is then asked for its Result:
//
//	m, err := merge.New(merge.Mean, len(transforms))
//	if err != nil {
//	    return err
//	}
//	for _, out := range outputs {
//	    if err := m.Append(out); err != nil {
//	        return err
//	    }
//	}
//	result, err := m.Result()
//
// All strategies are element-wise and independent of append order.
package merge
