package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDecodesInputs(t *testing.T) {
	d := New("plugin://x/?a", EncodeInputs([]string{"hello world", "a:b"}), Config{})
	assert.Equal(t, []string{"hello world", "a:b"}, d.Inputs)
}

func TestTryNewEmptyPath(t *testing.T) {
	_, ok := TryNew("", "", Config{})
	assert.False(t, ok)

	d, ok := TryNew("plugin://x/", "", Config{})
	assert.True(t, ok)
	assert.Equal(t, "plugin://x/", d.Path)
}

func TestCacheKeyNoCrossDescriptorLeakage(t *testing.T) {
	a := New("plugin://x/?a", "", Config{})
	b := New("plugin://x/?b", "", Config{})
	c := New("plugin://x/?a", "", Config{})

	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
	assert.Equal(t, a.CacheKey(), c.CacheKey())
	assert.True(t, a.Equal(c))
	assert.False(t, a.Equal(b))
}

func TestCacheKeyDistinguishesConfig(t *testing.T) {
	a := New("plugin://x/", "", Config{Language: PreferenceList{Values: []string{"fr"}}})
	b := New("plugin://x/", "", Config{Language: PreferenceList{Values: []string{"en"}}})

	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
}

func TestCacheKeyDistinguishesNoInherit(t *testing.T) {
	a := New("plugin://x/", "", Config{Format: PreferenceList{Values: []string{"mp4"}}})
	b := New("plugin://x/", "", Config{Format: PreferenceList{Values: []string{"mp4"}, NoInherit: true}})

	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
	assert.False(t, a.Equal(b))
}
