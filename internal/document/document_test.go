package document

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsEmpty(t *testing.T) {
	d := New()

	assert.True(t, d.IsEmpty())
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, "{}", string(d.JSON()))
	assert.Zero(t, d.Revision())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"object", `{"a":"1","b":{"c":[1,2]}}`, false},
		{"empty object", `{}`, false},
		{"array", `[1,2]`, true},
		{"string", `"x"`, true},
		{"null", `null`, true},
		{"empty", ``, true},
		{"broken", `{"a":`, true},
		{"trailing value", `{} {}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDocument)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, d)
		})
	}
}

func TestParse_KeepsNumberPrecision(t *testing.T) {
	d, err := Parse([]byte(`{"big":9007199254740993}`))
	require.NoError(t, err)

	assert.Equal(t, int64(9007199254740993), d.GetLong("big", 0))
	assert.JSONEq(t, `{"big":9007199254740993}`, string(d.JSON()))
}

func TestKeysHasRemove(t *testing.T) {
	d := New()
	d.PutString("b", "2")
	d.PutString("a", "1")
	d.PutString("c", "3")

	assert.Equal(t, []string{"a", "b", "c"}, d.Keys())
	assert.True(t, d.Has("a"))

	rev := d.Revision()
	d.Remove("a")
	assert.False(t, d.Has("a"))
	assert.Equal(t, rev+1, d.Revision())

	d.Remove("missing")
	assert.Equal(t, rev+1, d.Revision())

	d.Clear()
	assert.True(t, d.IsEmpty())
}

func TestKeys_AreNotPaths(t *testing.T) {
	d := New()
	d.PutString("a.b", "dotted")
	d.PutString("c/d", "slashed")

	assert.Equal(t, []string{"a.b", "c/d"}, d.Keys())
	assert.True(t, d.Has("a.b"))
	assert.False(t, d.Has("a"))
	assert.Equal(t, "dotted", d.GetString("a.b", ""))
	assert.JSONEq(t, `{"a.b":"dotted","c/d":"slashed"}`, string(d.JSON()))

	d.Remove("a.b")
	assert.Equal(t, []string{"c/d"}, d.Keys())
}

func TestEqual(t *testing.T) {
	parse := func(s string) *Document {
		d, err := Parse([]byte(s))
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same", `{"a":"1"}`, `{"a":"1"}`, true},
		{"key order", `{"a":"1","b":"2"}`, `{"b":"2","a":"1"}`, true},
		{"numeric form", `{"n":1}`, `{"n":1.0}`, true},
		{"nested", `{"o":{"x":[1,{"y":true}]}}`, `{"o":{"x":[1,{"y":true}]}}`, true},
		{"array order", `{"a":[1,2]}`, `{"a":[2,1]}`, false},
		{"string vs number", `{"n":"1"}`, `{"n":1}`, false},
		{"extra key", `{"a":"1"}`, `{"a":"1","b":"2"}`, false},
		{"missing key", `{"a":"1","b":"2"}`, `{"a":"1"}`, false},
		{"different value", `{"a":"1"}`, `{"a":"2"}`, false},
		{"exponent form", `{"n":1e2}`, `{"n":100}`, true},
		{"large ints differ", `{"n":9007199254740993}`, `{"n":9007199254740992}`, false},
		{"large ints equal", `{"n":12345678901234567890}`, `{"n":12345678901234567890.0}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := parse(tt.a), parse(tt.b)
			assert.Equal(t, tt.want, a.Equal(b))
			assert.Equal(t, tt.want, b.Equal(a))
		})
	}

	d := New()
	assert.True(t, d.Equal(d))
	assert.False(t, d.Equal(nil))
}

func TestDocument_ConcurrentAccess(t *testing.T) {
	d := New()
	other := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.PutInt("counter", int32(j))
				_ = d.GetInt("counter", 0)
				_ = d.GetString("name", "x")
				_ = d.Equal(other)
				_ = other.Equal(d)
				_ = d.Keys()
			}
		}(i)
	}
	wg.Wait()

	assert.True(t, d.Has("counter"))
	assert.Equal(t, "x", d.GetString("name", "y"))
}

func TestJSON_IsValid(t *testing.T) {
	d := New()
	d.PutString("s", "quote \" and \\ slash")
	d.PutDouble("f", 1.5)
	require.NoError(t, d.PutArray("arr", []any{1, "two", nil}))

	var v map[string]any
	require.NoError(t, json.Unmarshal(d.JSON(), &v))
	assert.Equal(t, "quote \" and \\ slash", v["s"])
	assert.Equal(t, "1.5", v["f"])
}
