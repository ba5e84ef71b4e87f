// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/Jeffail/gabs/v2"
	"github.com/google/go-cmp/cmp"
)

// Document is a keyed JSON store whose serialized form is an encrypted
// envelope. Scalars are stored as their string representation; nested
// objects and arrays are stored as JSON.
//
// All methods are safe for concurrent use. Typed getters may write to the
// document: a missing or unparsable value is replaced with the default.
type Document struct {
	mu       sync.Mutex
	root     *gabs.Container
	revision uint64
}

// New returns an empty document.
func New() *Document {
	return &Document{root: gabs.New()}
}

// Parse builds a document from plaintext JSON. The top level must be an object.
func Parse(data []byte) (*Document, error) {
	root, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

func decodeObject(data []byte) (*gabs.Container, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := gabs.ParseJSONDecoder(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if _, ok := root.Data().(map[string]any); !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedDocument)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedDocument)
	}

	return root, nil
}

// JSON returns the plaintext JSON encoding of the document.
func (d *Document) JSON() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.root.Bytes()
}

// Revision is incremented by every mutation, including default write-backs.
func (d *Document) Revision() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.revision
}

// Has reports whether key is present, whatever its value.
func (d *Document) Has(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.root.Exists(key)
}

// Keys returns the top-level keys in sorted order.
func (d *Document) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	children := d.root.ChildrenMap()
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of top-level keys.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.root.ChildrenMap())
}

// IsEmpty reports whether the document has no keys.
func (d *Document) IsEmpty() bool {
	return d.Len() == 0
}

// Remove deletes key. Removing a missing key is a no-op.
func (d *Document) Remove(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.root.Delete(key); err != nil {
		return
	}
	d.revision++
}

// Clear removes every key.
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.root = gabs.New()
	d.revision++
}

// Equal compares the JSON content of two documents. Key order and numeric
// formatting are ignored, so 1 equals 1.0; array order and value types are not.
func (d *Document) Equal(other *Document) bool {
	if d == other {
		return true
	}
	if other == nil {
		return false
	}

	a, errA := decodeObject(d.JSON())
	b, errB := decodeObject(other.JSON())
	if errA != nil || errB != nil {
		return false
	}

	return cmp.Equal(a.Data(), b.Data(), cmp.Comparer(numbersEqual))
}

// numbersEqual compares JSON numbers exactly, so integers beyond 2^53 that
// differ in the last digit stay different.
func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}

	ra, okA := new(big.Rat).SetString(a.String())
	rb, okB := new(big.Rat).SetString(b.String())
	if okA && okB {
		return ra.Cmp(rb) == 0
	}

	fa, errA := a.Float64()
	fb, errB := b.Float64()
	return errA == nil && errB == nil && fa == fb
}

// lookup returns the value under key; callers hold d.mu.
func (d *Document) lookup(key string) (any, bool) {
	c := d.root.Search(key)
	if c == nil {
		return nil, false
	}
	return c.Data(), true
}

// set stores v under key verbatim; callers hold d.mu.
func (d *Document) set(key string, v any) {
	// the root is always an object, so a single-key Set cannot fail
	_, _ = d.root.Set(v, key)
	d.revision++
}
