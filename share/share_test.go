package share_test

import (
	"sync"
	"testing"

	"quizapi/share"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePublishOnce(t *testing.T) {
	s := share.NewStore("http://localhost:5000")

	assert.False(t, s.ContainsUri("alice_avatar.png"))

	uri := s.CreateUri("alice_avatar.png", []byte("first"))
	assert.Equal(t, "http://localhost:5000/share/alice_avatar.png", uri)
	assert.True(t, s.ContainsUri("alice_avatar.png"))

	// A second publish for the same key must not replace the content.
	uri2 := s.CreateUri("alice_avatar.png", []byte("second"))
	assert.Equal(t, uri, uri2)

	data, ok := s.Get("alice_avatar.png")
	require.True(t, ok)
	assert.Equal(t, []byte("first"), data)
}

func TestStoreConcurrentPublish(t *testing.T) {
	s := share.NewStore("http://localhost:5000")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.CreateUri("k", []byte{byte(i)})
		}(i)
	}
	wg.Wait()

	data, ok := s.Get("k")
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestMakeUriEscapesKey(t *testing.T) {
	s := share.NewStore("http://localhost:5000")
	assert.Equal(t, "http://localhost:5000/share/bob_my%20face.png", s.MakeUri("bob_my face.png"))
}
