package common

import (
	"strings"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("MakeRandHexString error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected %d chars, got %d", n*2, len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("unexpected char %q in %q", c, s)
		}
	}
}

// ---------- MakeShareCode ----------

func TestMakeShareCode_LengthAndAlphabet(t *testing.T) {
	code, err := MakeShareCode()
	if err != nil {
		t.Fatalf("MakeShareCode error: %v", err)
	}
	if len(code) != ShareCodeLength {
		t.Fatalf("expected %d chars, got %d (%q)", ShareCodeLength, len(code), code)
	}
	for _, c := range code {
		if !strings.ContainsRune(shareCodeAlphabet, c) {
			t.Fatalf("char %q not in alphabet", c)
		}
	}
}

func TestMakeShareCode_EntropyHint(t *testing.T) {
	a, err := MakeShareCode()
	if err != nil {
		t.Fatalf("MakeShareCode error: %v", err)
	}
	b, err := MakeShareCode()
	if err != nil {
		t.Fatalf("MakeShareCode error: %v", err)
	}
	if a == b {
		t.Logf("warning: two MakeShareCode results are identical; extremely unlikely")
	}
}
