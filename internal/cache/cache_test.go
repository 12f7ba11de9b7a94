package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 42)

	value, found := c.GetValue("k")
	assert.True(t, found)
	assert.Equal(t, 42, value)
}

func TestGetMissing(t *testing.T) {
	c := New(time.Minute)

	_, found := c.GetValue("nope")
	assert.False(t, found)
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	_, found := c.GetValue("k")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v")
	c.Delete("k")

	_, found := c.GetValue("k")
	assert.False(t, found)
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("products:list:a", 1)
	c.Set("products:featured:4", 2)
	c.Set("product:xyz", 3)

	c.DeleteByPrefix("products:")

	_, found := c.GetValue("products:list:a")
	assert.False(t, found)
	_, found = c.GetValue("products:featured:4")
	assert.False(t, found)
	_, found = c.GetValue("product:xyz")
	assert.True(t, found)
	assert.Equal(t, 1, c.Size())
}
