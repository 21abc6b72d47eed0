// Package serialization reads and writes tensors in SafeTensors format.
//
// Format:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw little-endian bytes]
//
// The header maps tensor names to dtype, shape and [start, end) offsets into
// the data section, plus an optional "__metadata__" string map. Only F32 and
// F64 tensors are supported.
package serialization
