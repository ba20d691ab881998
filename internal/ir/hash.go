package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed trace identity.
// Version suffix enables future algorithm migration.
const (
	DomainCall    = "ymcalc/call/v1"
	DomainSession = "ymcalc/session/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CallID computes the content-addressed ID of one recorded capability call.
// The ID is stable for the same session, position, method and arguments.
func CallID(sessionID string, seq int64, receiver, method string, args IRArray) (string, error) {
	obj := IRObject{
		"session_id": IRString(sessionID),
		"seq":        IRInt(seq),
		"receiver":   IRString(receiver),
		"method":     IRString(method),
		"args":       args,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("CallID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainCall, canonical), nil
}

// CallLogDigest hashes the ordered method sequence of a session.
// Two sessions that observed the same calendar protocol share a digest,
// regardless of session id or timing.
func CallLogDigest(calls []Call) (string, error) {
	entries := make(IRArray, len(calls))
	for i, c := range calls {
		entries[i] = IRObject{
			"kind":   IRString(c.Kind),
			"method": IRString(c.Method),
			"args":   c.Args,
		}
	}

	canonical, err := MarshalCanonical(entries)
	if err != nil {
		return "", fmt.Errorf("CallLogDigest: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainSession, canonical), nil
}

// MustCallID is like CallID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustCallID(sessionID string, seq int64, receiver, method string, args IRArray) string {
	id, err := CallID(sessionID, seq, receiver, method, args)
	if err != nil {
		panic(err)
	}
	return id
}
