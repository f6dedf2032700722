package decode

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FingerprintRules canonicalizes M into a deterministic string by
// sorting gold substrings and, within each, their noisy surface forms
// (spec §9 "M by its canonicalized string form").
func FingerprintRules(rules Rules) string {
	keys := SortedRuleKeys(rules)
	var b strings.Builder
	for _, k := range keys {
		variants := append([]string(nil), rules[k]...)
		sort.Strings(variants)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.Join(variants, ","))
		b.WriteByte(';')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum)
}

// Fingerprint is the decode cache's content address: a hash of the
// (token, HMM fingerprint, M fingerprint, k) tuple (spec §4.3.3).
func Fingerprint(token, hmmFingerprint, rulesFingerprint string, k int) string {
	sum := sha256.Sum256([]byte(token + "\x00" + hmmFingerprint + "\x00" + rulesFingerprint + "\x00" + strconv.Itoa(k)))
	return fmt.Sprintf("%x", sum)
}
