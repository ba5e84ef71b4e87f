// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"testing"
)

func TestHash_MatchesSHA256(t *testing.T) {
	data := []byte("test-data")

	sum1 := Hash(data)
	sum2 := Hash(data)

	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	expected := sha256.Sum256(data)
	if !bytes.Equal(sum1, expected[:]) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", expected, sum1)
	}
}

func TestHash_PoolDoesNotLeakState(t *testing.T) {
	_ = Hash([]byte("first"))
	got := Hash([]byte("second"))

	expected := sha256.Sum256([]byte("second"))
	if !bytes.Equal(got, expected[:]) {
		t.Fatalf("pooled hasher kept state between calls: %x", got)
	}
}

func TestHash_Concurrent(t *testing.T) {
	data := []byte("concurrent")
	expected := sha256.Sum256(data)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !bytes.Equal(Hash(data), expected[:]) {
				t.Error("unexpected hash under concurrency")
			}
		}()
	}
	wg.Wait()
}

func TestHashString(t *testing.T) {
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := HashString([]byte("abc")); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestVerifyHash(t *testing.T) {
	data := []byte("payload")
	sum := sha256.Sum256(data)

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"matching", hex.EncodeToString(sum[:]), true},
		{"empty accepted", "", true},
		{"mismatch", HashString([]byte("other")), false},
		{"uppercase hex", strings.ToUpper(hex.EncodeToString(sum[:])), true},
		{"truncated", hex.EncodeToString(sum[:16]), false},
		{"garbage", "zz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyHash(data, tt.want); got != tt.ok {
				t.Fatalf("VerifyHash = %v, want %v", got, tt.ok)
			}
		})
	}
}
