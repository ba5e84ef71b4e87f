package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Jeffail/gabs/v2"
)

// GetString returns the value under key as text. Numbers and booleans are
// returned in their JSON spelling, objects and arrays as JSON text. A missing
// or null value is replaced with def.
func (d *Document) GetString(key, def string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.text(key)
	if !ok {
		d.set(key, def)
		return def
	}
	return s
}

// GetBool reports whether the value under key equals "true", ignoring case.
// Only a missing value is replaced with def; any other text reads as false.
func (d *Document) GetBool(key string, def bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.text(key)
	if !ok {
		d.set(key, strconv.FormatBool(def))
		return def
	}
	return strings.EqualFold(s, "true")
}

// GetInt returns the value under key as a 32-bit integer. A missing or
// unparsable value is replaced with def.
func (d *Document) GetInt(key string, def int32) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.text(key); ok {
		if n, ok := parseInt(s, 32); ok {
			return int32(n)
		}
	}
	d.set(key, strconv.FormatInt(int64(def), 10))
	return def
}

// GetLong is GetInt for 64-bit integers.
func (d *Document) GetLong(key string, def int64) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.text(key); ok {
		if n, ok := parseInt(s, 64); ok {
			return n
		}
	}
	d.set(key, strconv.FormatInt(def, 10))
	return def
}

// GetFloat returns the value under key as a float32. A missing or
// unparsable value is replaced with def.
func (d *Document) GetFloat(key string, def float32) float32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.text(key); ok {
		if f, ok := parseFloat(s, 32); ok {
			return float32(f)
		}
	}
	d.set(key, formatFloat(float64(def), 32))
	return def
}

// GetDouble is GetFloat for float64.
func (d *Document) GetDouble(key string, def float64) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.text(key); ok {
		if f, ok := parseFloat(s, 64); ok {
			return f
		}
	}
	d.set(key, formatFloat(def, 64))
	return def
}

// GetObject returns a copy of the nested object under key, or nil when the
// key is missing or holds something else. It never writes to the document.
func (d *Document) GetObject(key string) map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, _ := d.lookup(key)
	if _, ok := v.(map[string]any); !ok {
		return nil
	}
	out, err := clone(v)
	if err != nil {
		return nil
	}
	obj, _ := out.Data().(map[string]any)
	return obj
}

// GetArray returns a copy of the nested array under key, or nil when the
// key is missing or holds something else. It never writes to the document.
func (d *Document) GetArray(key string) []any {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, _ := d.lookup(key)
	if _, ok := v.([]any); !ok {
		return nil
	}
	out, err := clone(v)
	if err != nil {
		return nil
	}
	arr, _ := out.Data().([]any)
	return arr
}

func (d *Document) PutString(key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.set(key, value)
}

func (d *Document) PutBool(key string, value bool) {
	d.PutString(key, strconv.FormatBool(value))
}

func (d *Document) PutInt(key string, value int32) {
	d.PutString(key, strconv.FormatInt(int64(value), 10))
}

func (d *Document) PutLong(key string, value int64) {
	d.PutString(key, strconv.FormatInt(value, 10))
}

func (d *Document) PutFloat(key string, value float32) {
	d.PutString(key, formatFloat(float64(value), 32))
}

func (d *Document) PutDouble(key string, value float64) {
	d.PutString(key, formatFloat(value, 64))
}

// PutObject stores a nested object. The value is copied through its JSON
// encoding, so later changes to value are not reflected. A nil map removes key.
func (d *Document) PutObject(key string, value map[string]any) error {
	if value == nil {
		d.Remove(key)
		return nil
	}
	return d.putNested(key, value)
}

// PutArray stores a nested array. A nil slice removes key.
func (d *Document) PutArray(key string, value []any) error {
	if value == nil {
		d.Remove(key)
		return nil
	}
	return d.putNested(key, value)
}

func (d *Document) putNested(key string, value any) error {
	v, err := clone(value)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.set(key, v.Data())
	return nil
}

// text coerces the value under key to its string form; callers hold d.mu.
// JSON null counts as missing.
func (d *Document) text(key string) (string, bool) {
	v, _ := d.lookup(key)
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return formatFloat(v, 64), true
	default:
		return gabs.Wrap(v).String(), true
	}
}

// clone deep-copies v through JSON, keeping numbers as json.Number.
func clone(v any) (*gabs.Container, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	out, err := gabs.ParseJSONDecoder(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return out, nil
}
