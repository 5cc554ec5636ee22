// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package signature computes the keyed digest the game API requires on
// every call.
//
// The wire protocol mandates MD5 over the canonical URL followed directly
// by the game's private key. The digest proves possession of the key to
// the server; it is a protocol compatibility requirement and offers no
// cryptographic strength.
package signature

import (
	"crypto/md5"
	"encoding/hex"
)

// Param is the query parameter carrying the signature.
const Param = "signature"

// Sign returns the lowercase hex digest of url immediately followed by
// key, with no separator.
func Sign(url, key string) string {
	sum := md5.Sum([]byte(url + key))
	return hex.EncodeToString(sum[:])
}

// Append returns url with its signature appended as the final query
// parameter. The url must already carry a query string.
func Append(url, key string) string {
	return url + "&" + Param + "=" + Sign(url, key)
}
