package cache

import "testing"

func TestBuildKeyNormalization(t *testing.T) {
	c := &QueryCache{}
	base := c.buildKey("the cat sat", 5)

	equivalents := []string{
		"The Cat Sat",
		"  the   cat \t sat ",
		"THE CAT SAT",
	}
	for _, q := range equivalents {
		if got := c.buildKey(q, 5); got != base {
			t.Errorf("buildKey(%q, 5) = %q, want %q", q, got, base)
		}
	}
}

func TestBuildKeyDistinguishes(t *testing.T) {
	c := &QueryCache{}
	base := c.buildKey("the cat sat", 5)

	if got := c.buildKey("the cat sat", 10); got == base {
		t.Error("different limits must produce different keys")
	}
	if got := c.buildKey("the dog sat", 5); got == base {
		t.Error("different queries must produce different keys")
	}
}

func TestBuildKeyPrefix(t *testing.T) {
	c := &QueryCache{}
	key := c.buildKey("anything", 1)
	if len(key) <= len(keyPrefix) || key[:len(keyPrefix)] != keyPrefix {
		t.Errorf("key %q does not carry prefix %q", key, keyPrefix)
	}
}
