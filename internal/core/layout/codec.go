package layout

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrMalformed is wrapped when a stored layout cannot be decoded.
var ErrMalformed = errors.New("malformed layout")

// Encode serializes a valid tree.
func Encode(root *Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidNode)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}
	return data, nil
}

// Decode parses and validates a tree. Missing orientation, border and size
// fields take their defaults.
func Decode(data []byte) (*Node, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	root.normalize()
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &root, nil
}
