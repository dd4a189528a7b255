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
	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeArrayOfU128(t *testing.T) {
	t.Parallel()
	typ := mustType(t, "core::array::Array::<core::integer::u128>")
	calldata, err := EncodeFromTypes([]*Type{typ}, []any{[]uint64{122, 212, 221}})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(3, 122, 212, 221), calldata)
}

func TestEncodeOptionU256(t *testing.T) {
	t.Parallel()
	typ := mustType(t, "core::option::Option::<core::integer::u256>")

	calldata, err := EncodeFromTypes([]*Type{typ}, []any{None})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(0), calldata)

	calldata, err = EncodeFromTypes([]*Type{typ}, []any{nil})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(0), calldata)

	v := new(big.Int).Lsh(common.Big1, 128)
	v.Add(v, big.NewInt(5))
	calldata, err = EncodeFromTypes([]*Type{typ}, []any{Some(v)})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(1, 5, 1), calldata)
}

func TestEncodeBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ *Type
		val any
		ok  bool
	}{
		{U8Type, 255, true},
		{U8Type, 256, false},
		{U8Type, -1, false},
		{U16Type, 65535, true},
		{U16Type, 65536, false},
		{U128Type, new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 128), common.Big1), true},
		{U128Type, new(big.Int).Lsh(common.Big1, 128), false},
		{U256Type, new(big.Int).Lsh(common.Big1, 256), false},
		{I8Type, -128, true},
		{I8Type, -129, false},
		{I8Type, 128, false},
		{BoolType, true, true},
		{BoolType, 1, false},
		{FeltType, new(big.Int).Sub(felt.Modulus(), common.Big1), true},
		{FeltType, felt.Modulus(), false},
		{FeltType, "0x1234", true},
		{FeltType, "not a number", false},
		{EthAddressType, common.HexToAddress("0xdead"), true},
		{EthAddressType, new(big.Int).Lsh(common.Big1, 160), false},
		{Bytes31Type, []byte("hello"), true},
		{Bytes31Type, make([]byte, 32), false},
		{EthAddressType, felt.MustFromBig(new(big.Int).Lsh(common.Big1, 160)), false},
		{EthAddressType, felt.MustFromBig(new(big.Int).Lsh(common.Big1, 200)), false},
		{EthAddressType, felt.MustFromBig(new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 160), common.Big1)), true},
		{Bytes31Type, felt.MustFromBig(new(big.Int).Lsh(common.Big1, 250)), false},
		{Bytes31Type, felt.MustFromBig(new(big.Int).Lsh(common.Big1, 248)), false},
		{Bytes31Type, felt.MustFromBig(new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 248), common.Big1)), true},
		{ContractAddressType, felt.MustFromBig(new(big.Int).Lsh(common.Big1, 250)), true},
	}
	for _, tt := range tests {
		_, err := EncodeFromTypes([]*Type{tt.typ}, []any{tt.val})
		if tt.ok {
			assert.NoError(t, err, "%v %v", tt.typ, tt.val)
		} else {
			assert.ErrorIs(t, err, ErrTypeEncode, "%v %v", tt.typ, tt.val)
		}
	}
}

func TestEncodeBoundReported(t *testing.T) {
	t.Parallel()
	_, err := EncodeFromTypes([]*Type{U8Type}, []any{256})
	var encErr *TypeEncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "[0, 255]", encErr.Bound)
	assert.Equal(t, "[0]", encErr.Path)
}

func TestEncodeSigned(t *testing.T) {
	t.Parallel()
	calldata, err := EncodeFromTypes([]*Type{I32Type}, []any{int32(-120)})
	require.NoError(t, err)
	assert.Equal(t, []*felt.Felt{felt.FromUint64(120).Neg()}, calldata)
}

func TestEncodeU512(t *testing.T) {
	t.Parallel()
	v := big.NewInt(4)
	for _, limb := range []int64{3, 2, 1} {
		v.Lsh(v, 128)
		v.Add(v, big.NewInt(limb))
	}
	calldata, err := EncodeFromTypes([]*Type{U512Type}, []any{v})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(1, 2, 3, 4), calldata)
}

func TestEncodeEnum(t *testing.T) {
	t.Parallel()
	status := NewEnumType("Status", []Variant{
		{Name: "Idle"},
		{Name: "Moving", Type: NewTupleType([]*Type{U32Type, U32Type}, nil)},
	})
	tests := []struct {
		val  any
		want []*felt.Felt
	}{
		{EnumValue{Variant: "Idle"}, felt.FromUint64s(0)},
		{"Idle", felt.FromUint64s(0)},
		{&EnumValue{Variant: "Moving", Value: []uint32{4, 5}}, felt.FromUint64s(1, 4, 5)},
		{map[string]any{"Moving": []any{4, 5}}, felt.FromUint64s(1, 4, 5)},
	}
	for _, tt := range tests {
		calldata, err := EncodeFromTypes([]*Type{status}, []any{tt.val})
		require.NoError(t, err, "%v", tt.val)
		assert.Equal(t, tt.want, calldata, "%v", tt.val)
	}
	for _, bad := range []any{
		"Flying",
		EnumValue{Variant: "Idle", Value: 3},
		map[string]any{"Idle": nil, "Moving": nil},
		42,
	} {
		_, err := EncodeFromTypes([]*Type{status}, []any{bad})
		assert.ErrorIs(t, err, ErrTypeEncode, "%v", bad)
	}
}

func TestEncodeStruct(t *testing.T) {
	t.Parallel()
	position := NewStructType("Position", []string{"x", "y"}, []*Type{U32Type, U32Type})

	calldata, err := EncodeFromTypes([]*Type{position}, []any{map[string]any{"y": 2, "x": 1}})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(1, 2), calldata)

	calldata, err = EncodeFromTypes([]*Type{position}, []any{Values{{Name: "x", Value: uint32(7)}, {Name: "y", Value: uint32(8)}}})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(7, 8), calldata)

	_, err = EncodeFromTypes([]*Type{position}, []any{map[string]any{"x": 1}})
	assert.ErrorIs(t, err, ErrTypeEncode)
	_, err = EncodeFromTypes([]*Type{position}, []any{map[string]any{"x": 1, "z": 2}})
	assert.ErrorIs(t, err, ErrTypeEncode)
	_, err = EncodeFromTypes([]*Type{position}, []any{nil})
	assert.ErrorIs(t, err, ErrTypeEncode)
}

func TestEncodeParams(t *testing.T) {
	t.Parallel()
	args := Arguments{{Name: "a", Type: U32Type}, {Name: "b", Type: U32Type}}

	calldata, err := EncodeFromParams(args, map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(1, 2), calldata)

	_, err = EncodeFromParams(args, map[string]any{"a": 1})
	assert.ErrorIs(t, err, ErrCalldataArity)
	_, err = EncodeFromParams(args, map[string]any{"a": 1, "c": 2})
	assert.ErrorIs(t, err, ErrTypeEncode)
	_, err = EncodeFromTypes(args.Types(), []any{1})
	assert.ErrorIs(t, err, ErrCalldataArity)
}

func TestEncodeNonZero(t *testing.T) {
	t.Parallel()
	_, err := EncodeFromTypes([]*Type{NewNonZeroType(FeltType)}, []any{0})
	assert.ErrorIs(t, err, ErrTypeEncode)
	calldata, err := EncodeFromTypes([]*Type{NewNonZeroType(FeltType)}, []any{1})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64s(1), calldata)
}

func TestRoundTripZeroWidthArray(t *testing.T) {
	t.Parallel()
	tests := []*Type{
		NewArrayType(NewTupleType(nil, nil)),
		NewArrayType(NewTupleType([]*Type{NewTupleType(nil, nil), NewTupleType(nil, nil)}, nil)),
	}
	for _, typ := range tests {
		empty := make([]any, len(typ.Elem.TupleElems))
		for i := range empty {
			empty[i] = []any{}
		}
		values := []any{[]any{empty, empty, empty}}

		calldata, err := EncodeFromTypes([]*Type{typ}, values)
		require.NoError(t, err, typ.String())
		assert.Equal(t, felt.FromUint64s(3), calldata, typ.String())

		decoded, err := DecodeFromTypes([]*Type{typ}, calldata)
		require.NoError(t, err, typ.String())
		assert.Equal(t, values, decoded, typ.String())
	}
	_, err := DecodeFromTypes([]*Type{tests[0]}, felt.FromUint64s(maxZeroWidthElems+1))
	assert.ErrorIs(t, err, ErrTypeDecode)
}

// roundTrip is the Go shape of the composite type used by TestRoundTripFuzz.
type roundTrip struct {
	Small  uint8
	Medium uint32
	Large  uint64
	Flag   bool
	Signed int32
	Wide   [4]uint64
	List   []uint16
	Maybe  *int64
}

func TestRoundTripFuzz(t *testing.T) {
	t.Parallel()
	types := []*Type{
		U8Type, U32Type, U64Type, BoolType, I32Type, U256Type,
		NewArrayType(U16Type),
		NewOptionType(I64Type),
		NewStructType("Pair", []string{"left", "right"}, []*Type{U8Type, NewTupleType([]*Type{BoolType, FeltType}, nil)}),
	}
	f := fuzz.New().NilChance(0.3).NumElements(0, 8)
	for i := 0; i < 200; i++ {
		var in roundTrip
		f.Fuzz(&in)

		wide := uint256.Int(in.Wide)
		var maybe any = None
		if in.Maybe != nil {
			maybe = Some(*in.Maybe)
		}
		values := []any{
			in.Small, in.Medium, in.Large, in.Flag, in.Signed, &wide, in.List, maybe,
			map[string]any{"left": in.Small, "right": []any{in.Flag, felt.FromUint64(in.Large)}},
		}
		calldata, err := EncodeFromTypes(types, values)
		require.NoError(t, err)

		decoded, err := DecodeFromTypes(types, calldata)
		require.NoError(t, err)

		list := make([]any, len(in.List))
		for j, v := range in.List {
			list[j] = v
		}
		var wantMaybe any = None
		if in.Maybe != nil {
			wantMaybe = Some(*in.Maybe)
		}
		want := []any{
			in.Small, in.Medium, in.Large, in.Flag, in.Signed, &wide, list, wantMaybe,
			Values{
				{Name: "left", Value: in.Small},
				{Name: "right", Value: []any{in.Flag, felt.FromUint64(in.Large)}},
			},
		}
		require.Equal(t, want, decoded)

		again, err := EncodeFromTypes(types, decoded)
		require.NoError(t, err)
		require.Equal(t, calldata, again)
	}
}
