package common

import "testing"

func TestWipeByteArray_Overwrites(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %v", i, v)
		}
	}
}

func TestWipeByteArray_NilIsSafe(t *testing.T) {
	WipeByteArray(nil) // must not panic
}
