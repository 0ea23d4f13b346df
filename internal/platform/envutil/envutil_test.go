package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("CF_INT", "42")
	t.Setenv("CF_BAD_INT", "x")
	t.Setenv("CF_BOOL", "on")
	t.Setenv("CF_LIST", " a, ,b ")
	t.Setenv("CF_SECS", "3")

	if got := Int("CF_INT", 1); got != 42 {
		t.Fatalf("Int=%d", got)
	}
	if got := Int("CF_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback=%d", got)
	}
	if !Bool("CF_BOOL", false) {
		t.Fatalf("Bool should be true")
	}
	if got := List("CF_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List=%v", got)
	}
	if got := Seconds("CF_SECS", time.Minute); got != 3*time.Second {
		t.Fatalf("Seconds=%v", got)
	}
	if got := String("CF_MISSING", "def"); got != "def" {
		t.Fatalf("String=%q", got)
	}
}
