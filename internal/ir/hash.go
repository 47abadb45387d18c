package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainQuery is the domain-separation prefix for query fingerprints.
// The version suffix allows a future change of algorithm.
const DomainQuery = "subsel/query/v1"

// DomainVocabulary is the domain-separation prefix for vocabulary checksums.
const DomainVocabulary = "subsel/vocabulary/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes a content-addressed identity for a compiled query.
// Two compiles of identical inputs produce the same fingerprint.
func Fingerprint(q *CompiledQuery) (string, error) {
	params := make(map[string]any, len(q.Params))
	for k, v := range q.Params {
		params[k] = v
	}
	fp, err := HashCanonical(DomainQuery, map[string]any{
		"format": QueryFormatVersion,
		"text":   q.Text,
		"params": params,
	})
	if err != nil {
		return "", fmt.Errorf("Fingerprint: %w", err)
	}
	return fp, nil
}

// HashCanonical hashes the canonical JSON form of v under domain.
func HashCanonical(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when the query came from the compiler.
func MustFingerprint(q *CompiledQuery) string {
	fp, err := Fingerprint(q)
	if err != nil {
		panic(err)
	}
	return fp
}
