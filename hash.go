// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixed

import (
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Identity hashes an unsigned integer key to itself.
// It is the hash [NewMap] uses when none is given and K is unsigned.
func Identity[K constraints.Unsigned](k K) uint64 {
	return uint64(k)
}

// HashString hashes a string key with xxHash64.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashBytes hashes a byte slice with xxHash64.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// unsignedHash returns the identity hash for K when K's underlying type
// is an unsigned integer, or nil otherwise. Defined types such as
// `type ID uint32` qualify.
func unsignedHash[K comparable]() func(K) uint64 {
	switch reflect.TypeFor[K]().Kind() {
	case reflect.Uint8:
		return func(k K) uint64 { return uint64(*(*uint8)(unsafe.Pointer(&k))) }
	case reflect.Uint16:
		return func(k K) uint64 { return uint64(*(*uint16)(unsafe.Pointer(&k))) }
	case reflect.Uint32:
		return func(k K) uint64 { return uint64(*(*uint32)(unsafe.Pointer(&k))) }
	case reflect.Uint64:
		return func(k K) uint64 { return *(*uint64)(unsafe.Pointer(&k)) }
	case reflect.Uint:
		return func(k K) uint64 { return uint64(*(*uint)(unsafe.Pointer(&k))) }
	case reflect.Uintptr:
		return func(k K) uint64 { return uint64(*(*uintptr)(unsafe.Pointer(&k))) }
	default:
		return nil
	}
}
