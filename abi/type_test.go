// Copyright 2016 The go-ethereum Authors
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

// 版权所有 2016 The go-ethereum Authors
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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticLookup(types map[string]*Type) TypeLookup {
	return func(name string) (*Type, error) {
		if t, ok := types[name]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("undefined type %q", name)
	}
}

func TestNewTypeSignatures(t *testing.T) {
	t.Parallel()
	position := NewStructType("game::Position", []string{"x", "y"}, []*Type{U32Type, U32Type})
	lookup := staticLookup(map[string]*Type{"game::Position": position})

	tests := []struct {
		input string
		want  string
	}{
		{"core::bool", "Bool"},
		{"core::integer::u8", "U8"},
		{"core::integer::usize", "U32"},
		{"core::integer::u256", "U256"},
		{"core::integer::u512", "U512"},
		{"core::integer::i128", "I128"},
		{"core::felt252", "Felt"},
		{"core::bytes_31::bytes31", "Bytes31"},
		{"core::starknet::contract_address::ContractAddress", "ContractAddress"},
		{"core::starknet::class_hash::ClassHash", "ClassHash"},
		{"core::starknet::eth_address::EthAddress", "EthAddress"},
		{"core::starknet::storage_access::StorageAddress", "StorageAddress"},
		{"felt", "Felt"},
		{"felt*", "[Felt]"},
		{"Uint256", "U256"},
		{"()", "()"},
		{"@core::array::Array::<core::felt252>", "[Felt]"},
		{"core::array::Span::<core::integer::u128>", "[U128]"},
		{"Array<core::integer::u8>", "[U8]"},
		{"core::zeroable::NonZero::<core::integer::u64>", "NonZero[U64]"},
		{"core::array::Array::<core::option::Option::<core::felt252>>", "[Option[Felt]]"},
		{"core::array::Array::<core::array::Array::<core::array::Array::<core::integer::u32>>>", "[[[U32]]]"},
		{"(core::integer::u32, (core::felt252, core::integer::u256), core::bool)", "(U32,(Felt,U256),Bool)"},
		{"core::array::Span::<(core::integer::u8, core::array::Array::<(core::felt252, core::bool)>)>", "[(U8,[(Felt,Bool)])]"},
		{"core::option::Option::<(core::felt252, core::option::Option::<(core::bool, core::integer::u8)>)>", "Option[(Felt,Option[(Bool,U8)])]"},
		{"(a: core::integer::u8, b: core::array::Array::<core::felt252>)", "(a:U8,b:[Felt])"},
		{"(core::felt252,)", "(Felt)"},
		{"core::array::Array::<game::Position>", "[Struct(game::Position){x:U32,y:U32}]"},
		{"core::starknet::account::Call", "Struct(Call){to:ContractAddress,selector:Felt,calldata:[Felt]}"},
	}
	for _, tt := range tests {
		typ, err := NewType(tt.input, lookup)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, typ.String(), tt.input)
	}
}

func TestNewTypeErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"",
		"   ",
		"core::array::Array::<core::felt252",
		"core::array::Array::<core::felt252>>",
		"core::array::Array::<(core::felt252>)",
		"(core::felt252, core::bool",
		"(core::felt252, core::bool))",
		"(core::felt252,, core::bool)",
		"core::array::Array::<core::felt252, core::bool>",
		"(a: core::felt252, core::bool)",
		"core::integer::u8 garbage",
		"unknown::Type",
		"core::array::Array::<unknown::Type>",
	} {
		_, err := NewType(input, nil)
		assert.Error(t, err, "%q", input)
	}
}

func TestSplitTopLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  []string
	}{
		{"a", []string{"a"}},
		{"a, b", []string{"a", "b"}},
		{"a::<b, c>, d", []string{"a::<b, c>", "d"}},
		{"(a, (b, c)), Array<(d, e)>", []string{"(a, (b, c))", "Array<(d, e)>"}},
		{"a,", []string{"a", ""}},
	}
	for _, tt := range tests {
		got, err := splitTopLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
	_, err := splitTopLevel("a>, b")
	assert.ErrorIs(t, err, errUnbalanced)
	_, err = splitTopLevel("(a, b")
	assert.ErrorIs(t, err, errUnbalanced)
}

func TestSplitMemberName(t *testing.T) {
	t.Parallel()
	name, typ := splitMemberName("amount: core::integer::u256")
	assert.Equal(t, "amount", name)
	assert.Equal(t, "core::integer::u256", typ)

	name, typ = splitMemberName("core::array::Array::<(a: core::felt252)>")
	assert.Equal(t, "", name)
	assert.Equal(t, "core::array::Array::<(a: core::felt252)>", typ)
}

func TestTypeWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, U256Type.Width())
	assert.Equal(t, 4, U512Type.Width())
	assert.Equal(t, 3, CallType.Width())
	assert.Equal(t, 1, NewArrayType(U256Type).Width())
	assert.Equal(t, 3, NewTupleType([]*Type{U256Type, BoolType}, nil).Width())

	status := NewEnumType("Status", []Variant{{Name: "Idle"}, {Name: "Amount", Type: U256Type}})
	assert.Equal(t, 1, status.Width())
	amount := NewEnumType("Amount", []Variant{{Name: "Small", Type: U8Type}, {Name: "Big", Type: U256Type}})
	assert.Equal(t, 2, amount.Width())
}

func TestEnumSignature(t *testing.T) {
	t.Parallel()
	status := NewEnumType("TxStatus", []Variant{
		{Name: "Submitted"},
		{Name: "Executed", Type: FeltType},
	})
	assert.Equal(t, "Enum(TxStatus)['Submitted',Executed:Felt]", status.String())
	assert.False(t, status.Variants[0].HasPayload())
	assert.True(t, status.Variants[1].HasPayload())
	assert.Equal(t, 1, status.VariantIndex("Executed"))
	assert.Equal(t, -1, status.VariantIndex("Finalized"))
}

func TestStructNameInSignature(t *testing.T) {
	t.Parallel()
	a := NewStructType("A", []string{"x"}, []*Type{U8Type})
	b := NewStructType("B", []string{"x"}, []*Type{U8Type})
	assert.NotEqual(t, a.String(), b.String())
	assert.Equal(t, a.String(), NewStructType("A", []string{"x"}, []*Type{U8Type}).String())
}
