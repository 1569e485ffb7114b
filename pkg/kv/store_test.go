//go:build unit

package kv

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s := New()

	s.Set("@a/foo", 1)
	v, ok := s.Get("@a/foo")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	s.Set("@a/foo", nil)
	_, ok = s.Get("@a/foo")
	assert.False(t, ok)
}

func TestStore_DeletePrefix(t *testing.T) {
	s := New()
	s.Set("@a/one", 1)
	s.Set("@a/@buildfoo//two", 2)
	s.Set("@ab/one", 3)
	s.Set("@b/one", 4)

	removed := s.DeletePrefix("@a/")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"@ab/one", "@b/one"}, s.Keys(""))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(fmt.Sprintf("@p/%d", i), i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Len(t, s.Keys("@p/"), 50)
}
