// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// 版权所有 2024 The go-ethereum Authors
// 此文件是 go-ethereum 库的一部分。
//
// go-ethereum 库是免费软件：您可以根据自由软件基金会发布的 GNU 宽通用公共许可证的条款重新分发和/或修改它，
// 可以是许可证的第 3 版，也可以是（由您选择）任何更高版本。
//
// go-ethereum 库的发布是希望它能有用，但没有任何保证；甚至没有对适销性或特定用途适用性的默示保证。
// 有关更多详细信息，请参阅 GNU 宽通用公共许可证。
//
// 您应该已经随 go-ethereum 库收到一份 GNU 宽通用公共许可证的副本。如果没有，请参阅 <http://www.gnu.org/licenses/>。

// Package felt implements the Starknet field element, the atomic unit of
// calldata, event keys and event data.
// Package felt 实现了 Starknet 域元素，它是 calldata、事件 key 和事件 data 的基本单元。
package felt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// Bytes is the size of a big-endian encoded field element.
const Bytes = fp.Bytes

var (
	errNegative   = errors.New("felt: negative value")
	errOverflow   = errors.New("felt: value exceeds field modulus")
	errTooLong    = errors.New("felt: more than 32 bytes")
	errEmptyInput = errors.New("felt: empty input")
	errSyntax     = errors.New("felt: invalid number syntax")
)

// Zero is the additive identity.
var Zero = Felt{}

// Felt is an element of the Stark prime field P = 2^251 + 17*2^192 + 1.
// Felt values are comparable and can be used as map keys.
// Felt 是 Stark 素数域中的元素。Felt 值可比较，可用作 map 的键。
type Felt struct {
	val fp.Element
}

// Modulus returns the field modulus P.
// Modulus 返回域模数 P。
func Modulus() *big.Int {
	return fp.Modulus()
}

// FromUint64 returns a felt holding v.
func FromUint64(v uint64) *Felt {
	var f Felt
	f.val.SetUint64(v)
	return &f
}

// FromBig converts v into a felt. Values outside [0, P) are rejected rather
// than reduced.
// FromBig 将 v 转换为 felt。超出 [0, P) 的值会被拒绝而不是取模。
func FromBig(v *big.Int) (*Felt, error) {
	if v.Sign() < 0 {
		return nil, errNegative
	}
	if v.Cmp(fp.Modulus()) >= 0 {
		return nil, errOverflow
	}
	var f Felt
	f.val.SetBigInt(v)
	return &f, nil
}

// FromBytes interprets b as a big-endian unsigned integer.
func FromBytes(b []byte) (*Felt, error) {
	if len(b) > Bytes {
		return nil, errTooLong
	}
	return FromBig(new(big.Int).SetBytes(b))
}

// FromHex parses a hex string with or without 0x prefix. Leading zeros are
// allowed, unlike hexutil.DecodeBig.
// FromHex 解析带或不带 0x 前缀的十六进制字符串。允许前导零。
func FromHex(s string) (*Felt, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errEmptyInput
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errSyntax, s)
	}
	return FromBig(v)
}

// FromString parses a 0x-prefixed hex string or a decimal string.
func FromString(s string) (*Felt, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return FromHex(s)
	}
	if s == "" {
		return nil, errEmptyInput
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errSyntax, s)
	}
	return FromBig(v)
}

// MustFromHex is like FromHex but panics on error. Intended for constants and tests.
func MustFromHex(s string) *Felt {
	f, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return f
}

// MustFromBig is like FromBig but panics on error.
func MustFromBig(v *big.Int) *Felt {
	f, err := FromBig(v)
	if err != nil {
		panic(err)
	}
	return f
}

// FromUint64s is a convenience helper to build calldata from small integers.
func FromUint64s(vs ...uint64) []*Felt {
	out := make([]*Felt, len(vs))
	for i, v := range vs {
		out[i] = FromUint64(v)
	}
	return out
}

// BigInt returns the canonical integer value of z.
func (z *Felt) BigInt() *big.Int {
	return z.val.BigInt(new(big.Int))
}

// IsUint64 reports whether z fits in a uint64.
func (z *Felt) IsUint64() bool {
	return z.val.IsUint64()
}

// Uint64 returns the low 64 bits of z. Check IsUint64 first.
func (z *Felt) Uint64() uint64 {
	return z.val.Uint64()
}

// IsZero reports whether z == 0.
func (z *Felt) IsZero() bool {
	return z.val.IsZero()
}

// Equal reports whether z and x hold the same element.
func (z *Felt) Equal(x *Felt) bool {
	return z.val.Equal(&x.val)
}

// Cmp compares the canonical integer values of z and x.
func (z *Felt) Cmp(x *Felt) int {
	return z.val.Cmp(&x.val)
}

// Neg returns the additive inverse P - z as a new felt.
// Neg 返回加法逆元 P - z。
func (z *Felt) Neg() *Felt {
	var f Felt
	f.val.Neg(&z.val)
	return &f
}

// Bytes returns the 32 byte big-endian encoding of z.
func (z *Felt) Bytes() [Bytes]byte {
	return z.val.Bytes()
}

// Hash returns z as a 32 byte hash, which is how class hashes and addresses
// are usually keyed.
func (z *Felt) Hash() common.Hash {
	return common.Hash(z.val.Bytes())
}

// String returns the shortest 0x-prefixed hex form.
func (z *Felt) String() string {
	return "0x" + z.val.Text(16)
}

// FullHex returns the 0x-prefixed hex form zero-padded to 64 digits.
// FullHex 返回补零到 64 位的 0x 前缀十六进制形式。
func (z *Felt) FullHex() string {
	return hexutil.Encode(math.PaddedBigBytes(z.BigInt(), Bytes))
}

// MarshalJSON encodes z as a hex string.
func (z *Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

// UnmarshalJSON accepts a hex or decimal string, or a bare JSON number.
func (z *Felt) UnmarshalJSON(input []byte) error {
	var s string
	if len(input) > 0 && input[0] == '"' {
		if err := json.Unmarshal(input, &s); err != nil {
			return err
		}
	} else {
		s = string(input)
	}
	f, err := FromString(s)
	if err != nil {
		return err
	}
	*z = *f
	return nil
}
