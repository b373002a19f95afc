package env

import (
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	t.Setenv("DOCCOLLECT_TEST_STRING", "hello")
	t.Setenv("DOCCOLLECT_TEST_INT", "42")
	t.Setenv("DOCCOLLECT_TEST_BAD_INT", "forty-two")
	t.Setenv("DOCCOLLECT_TEST_BOOL", "true")
	t.Setenv("DOCCOLLECT_TEST_DURATION", "90s")

	if got := GetString("DOCCOLLECT_TEST_STRING", "x"); got != "hello" {
		t.Errorf("GetString() = %q, want %q", got, "hello")
	}
	if got := GetString("DOCCOLLECT_TEST_MISSING", "x"); got != "x" {
		t.Errorf("GetString() fallback = %q, want %q", got, "x")
	}
	if got := GetInt("DOCCOLLECT_TEST_INT", 1); got != 42 {
		t.Errorf("GetInt() = %d, want 42", got)
	}
	if got := GetInt("DOCCOLLECT_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt() with bad value = %d, want fallback 7", got)
	}
	if got := GetInt64("DOCCOLLECT_TEST_INT", 1); got != 42 {
		t.Errorf("GetInt64() = %d, want 42", got)
	}
	if got := GetBool("DOCCOLLECT_TEST_BOOL", false); !got {
		t.Errorf("GetBool() = %v, want true", got)
	}
	if got := GetDuration("DOCCOLLECT_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("GetDuration() = %v, want 90s", got)
	}
	if got := GetDuration("DOCCOLLECT_TEST_MISSING", time.Hour); got != time.Hour {
		t.Errorf("GetDuration() fallback = %v, want 1h", got)
	}
}
