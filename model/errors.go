package model

import "errors"

// Tree and range errors.
var (
	// ErrDetached indicates a boundary point outside the range's tree.
	ErrDetached = errors.New("model: node is not in the same tree")

	// ErrIndexSize indicates an offset larger than the node's length.
	ErrIndexSize = errors.New("model: offset out of range")

	// ErrHierarchy indicates an insertion that would break the tree.
	ErrHierarchy = errors.New("model: invalid hierarchy")
)
