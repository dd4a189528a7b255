// Copyright 2017 The go-ethereum Authors
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

// 版权所有 2017 The go-ethereum Authors
// 此文件是 go-ethereum 库的一部分。
//
// go-ethereum 库是免费软件：您可以根据自由软件基金会发布的 GNU 宽通用公共许可证的条款重新分发和/或修改它，
// 可以是许可证的第 3 版，也可以是（由您选择）任何更高版本。
//
// go-ethereum 库的发布是希望它能有用，但没有任何保证；甚至没有对适销性或特定用途适用性的默示保证。
// 有关更多详细信息，请参阅 GNU 宽通用公共许可证。
//
// 您应该已经随 go-ethereum 库收到一份 GNU 宽通用公共许可证的副本。如果没有，请参阅 <http://www.gnu.org/licenses/>。

package abi

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/starknet-abi/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustType(t *testing.T, s string) *Type {
	t.Helper()
	typ, err := NewType(s, nil)
	require.NoError(t, err, s)
	return typ
}

func TestDecodeArrayOfU128(t *testing.T) {
	t.Parallel()
	typ := mustType(t, "core::array::Array::<core::integer::u128>")
	values, err := DecodeFromTypes([]*Type{typ}, felt.FromUint64s(3, 122, 212, 221))
	require.NoError(t, err)
	assert.Equal(t, []any{uint256.NewInt(122), uint256.NewInt(212), uint256.NewInt(221)}, values[0])
}

func TestDecodeOptionU256(t *testing.T) {
	t.Parallel()
	typ := mustType(t, "core::option::Option::<core::integer::u256>")

	values, err := DecodeFromTypes([]*Type{typ}, felt.FromUint64s(0))
	require.NoError(t, err)
	assert.Equal(t, None, values[0])

	values, err = DecodeFromTypes([]*Type{typ}, felt.FromUint64s(1, 5, 1))
	require.NoError(t, err)
	opt, ok := values[0].(OptionValue)
	require.True(t, ok)
	require.True(t, opt.Present)
	want := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	want.AddUint64(want, 5)
	assert.Equal(t, want, opt.Value)

	_, err = DecodeFromTypes([]*Type{typ}, felt.FromUint64s(2))
	assert.ErrorIs(t, err, ErrTypeDecode)
}

func TestDecodeU256Limbs(t *testing.T) {
	t.Parallel()
	maxLimb := new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 128), common.Big1)
	values, err := DecodeFromTypes([]*Type{U256Type}, []*felt.Felt{felt.MustFromBig(maxLimb), felt.MustFromBig(maxLimb)})
	require.NoError(t, err)
	max256 := new(uint256.Int).SetAllOne()
	assert.Equal(t, max256, values[0])

	tooWide := new(big.Int).Lsh(common.Big1, 128)
	_, err = DecodeFromTypes([]*Type{U256Type}, []*felt.Felt{felt.MustFromBig(tooWide), felt.FromUint64(0)})
	assert.ErrorIs(t, err, ErrTypeDecode)

	_, err = DecodeFromTypes([]*Type{U256Type}, felt.FromUint64s(1))
	assert.ErrorIs(t, err, ErrTypeDecode)
}

func TestDecodeU512(t *testing.T) {
	t.Parallel()
	values, err := DecodeFromTypes([]*Type{U512Type}, felt.FromUint64s(1, 2, 3, 4))
	require.NoError(t, err)
	want := big.NewInt(4)
	for _, limb := range []int64{3, 2, 1} {
		want.Lsh(want, 128)
		want.Add(want, big.NewInt(limb))
	}
	got, ok := values[0].(*big.Int)
	require.True(t, ok)
	assert.Equal(t, 0, want.Cmp(got), "got %v want %v", got, want)
}

func TestDecodeBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ  *Type
		in   uint64
		want any
		err  bool
	}{
		{U8Type, 255, uint8(255), false},
		{U8Type, 256, nil, true},
		{U16Type, 65535, uint16(65535), false},
		{U16Type, 65536, nil, true},
		{U32Type, 1<<32 - 1, uint32(1<<32 - 1), false},
		{U32Type, 1 << 32, nil, true},
		{U64Type, 1<<64 - 1, uint64(1<<64 - 1), false},
		{BoolType, 0, false, false},
		{BoolType, 1, true, false},
		{BoolType, 2, nil, true},
		{I8Type, 127, int8(127), false},
		{I8Type, 128, nil, true},
	}
	for _, tt := range tests {
		values, err := DecodeFromTypes([]*Type{tt.typ}, felt.FromUint64s(tt.in))
		if tt.err {
			assert.ErrorIs(t, err, ErrTypeDecode, "%v %d", tt.typ, tt.in)
			continue
		}
		require.NoError(t, err, "%v %d", tt.typ, tt.in)
		assert.Equal(t, tt.want, values[0], "%v %d", tt.typ, tt.in)
	}
}

func TestDecodeSigned(t *testing.T) {
	t.Parallel()
	neg := func(v int64) *felt.Felt { return felt.FromUint64(uint64(v)).Neg() }

	values, err := DecodeFromTypes([]*Type{I32Type}, []*felt.Felt{neg(120)})
	require.NoError(t, err)
	assert.Equal(t, int32(-120), values[0])

	values, err = DecodeFromTypes([]*Type{I8Type, I16Type, I64Type}, []*felt.Felt{neg(128), neg(1), neg(1 << 62)})
	require.NoError(t, err)
	assert.Equal(t, []any{int8(-128), int16(-1), int64(-(1 << 62))}, values)

	_, err = DecodeFromTypes([]*Type{I8Type}, []*felt.Felt{neg(129)})
	assert.ErrorIs(t, err, ErrTypeDecode)

	values, err = DecodeFromTypes([]*Type{I128Type}, []*felt.Felt{neg(7)})
	require.NoError(t, err)
	assert.Equal(t, 0, big.NewInt(-7).Cmp(values[0].(*big.Int)))
}

func TestDecodeEnum(t *testing.T) {
	t.Parallel()
	status := NewEnumType("Status", []Variant{
		{Name: "Idle"},
		{Name: "Moving", Type: NewTupleType([]*Type{U32Type, U32Type}, nil)},
		{Name: "Owner", Type: ContractAddressType},
	})

	values, err := DecodeFromTypes([]*Type{status}, felt.FromUint64s(0))
	require.NoError(t, err)
	assert.Equal(t, EnumValue{Variant: "Idle"}, values[0])

	values, err = DecodeFromTypes([]*Type{status}, felt.FromUint64s(1, 4, 5))
	require.NoError(t, err)
	assert.Equal(t, EnumValue{Variant: "Moving", Value: []any{uint32(4), uint32(5)}}, values[0])

	values, err = DecodeFromTypes([]*Type{status}, felt.FromUint64s(2, 0xabc))
	require.NoError(t, err)
	assert.Equal(t, EnumValue{Variant: "Owner", Value: felt.FromUint64(0xabc)}, values[0])

	_, err = DecodeFromTypes([]*Type{status}, felt.FromUint64s(3))
	assert.ErrorIs(t, err, ErrTypeDecode)
}

func TestDecodeLiteralEnums(t *testing.T) {
	t.Parallel()
	color := NewEnumType("Color", []Variant{{Name: "Red"}, {Name: "Green"}, {Name: "Blue"}})
	values, err := DecodeFromTypes([]*Type{NewArrayType(color)}, felt.FromUint64s(3, 2, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []any{
		EnumValue{Variant: "Blue"},
		EnumValue{Variant: "Red"},
		EnumValue{Variant: "Green"},
	}, values[0])
}

func TestDecodeStructPath(t *testing.T) {
	t.Parallel()
	position := NewStructType("Position", []string{"x", "y"}, []*Type{U8Type, U8Type})
	list := NewArrayType(position)
	_, err := DecodeFromParams(Arguments{{Name: "moves", Type: list}}, felt.FromUint64s(2, 1, 2, 3, 300))

	var decErr *TypeDecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "moves[1].y", decErr.Path)
	assert.Equal(t, 4, decErr.Offset)
	assert.Equal(t, "U8", decErr.Type)
}

func TestDecodeArrayLengthOverflow(t *testing.T) {
	t.Parallel()
	typ := NewArrayType(FeltType)

	_, err := DecodeFromTypes([]*Type{typ}, felt.FromUint64s(3, 1, 2))
	assert.ErrorIs(t, err, ErrTypeDecode)

	huge := felt.MustFromHex("0x7ffffffffffffffffffffffffffffffffff")
	_, err = DecodeFromTypes([]*Type{typ}, []*felt.Felt{huge, felt.FromUint64(1)})
	assert.ErrorIs(t, err, ErrTypeDecode)

	_, err = DecodeFromTypes([]*Type{NewArrayType(U256Type)}, felt.FromUint64s(2, 1, 0, 1))
	assert.ErrorIs(t, err, ErrTypeDecode)

	values, err := DecodeFromTypes([]*Type{typ}, felt.FromUint64s(0))
	require.NoError(t, err)
	assert.Equal(t, []any{}, values[0])
}

func TestDecodeArity(t *testing.T) {
	t.Parallel()
	_, err := DecodeFromTypes([]*Type{U32Type, U32Type}, felt.FromUint64s(1, 2, 3))
	assert.ErrorIs(t, err, ErrCalldataArity)

	values, consumed, err := DecodePrefix([]*Type{U32Type, U32Type}, felt.FromUint64s(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, consumed)
	assert.Equal(t, []any{uint32(1), uint32(2)}, values)

	_, err = DecodeFromTypes([]*Type{U32Type}, []*felt.Felt{nil})
	assert.ErrorIs(t, err, ErrTypeDecode)
}

func TestDecodeNonZero(t *testing.T) {
	t.Parallel()
	typ := NewNonZeroType(U256Type)
	_, err := DecodeFromTypes([]*Type{typ}, felt.FromUint64s(0, 0))
	assert.ErrorIs(t, err, ErrTypeDecode)

	values, err := DecodeFromTypes([]*Type{typ}, felt.FromUint64s(0, 1))
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).Lsh(uint256.NewInt(1), 128), values[0])
}

func TestDecodeFeltKinds(t *testing.T) {
	t.Parallel()
	addr := common.HexToAddress("0x00000000219ab540356cBB839Cbe05303d7705Fa")
	var word [32]byte
	copy(word[12:], addr.Bytes())
	ethFelt, err := felt.FromBytes(word[:])
	require.NoError(t, err)

	short := [31]byte{}
	copy(short[28:], "abc")
	shortFelt, err := felt.FromBytes(short[:])
	require.NoError(t, err)

	values, err := DecodeFromTypes(
		[]*Type{EthAddressType, Bytes31Type, ClassHashType},
		[]*felt.Felt{ethFelt, shortFelt, felt.FromUint64(9)},
	)
	require.NoError(t, err)
	assert.Equal(t, addr, values[0])
	assert.Equal(t, short, values[1])
	assert.Equal(t, felt.FromUint64(9), values[2])

	_, err = DecodeFromTypes([]*Type{EthAddressType}, []*felt.Felt{felt.MustFromBig(new(big.Int).Lsh(common.Big1, 160))})
	assert.ErrorIs(t, err, ErrTypeDecode)
}
