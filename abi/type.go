// Copyright 2015 The go-ethereum Authors
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

// 版权所有 2015 The go-ethereum Authors
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
	"math/big"
	"strings"

	"github.com/NethermindEth/starknet-abi/felt"
	"github.com/ethereum/go-ethereum/common"
)

// Type enumerator
// 类型枚举器
const (
	BoolTy            byte = iota // 布尔型
	UintTy                        // 无符号整型
	IntTy                         // 有符号整型
	FeltTy                        // 域元素
	ContractAddressTy             // 合约地址
	ClassHashTy                   // 类哈希
	StorageAddressTy              // 存储地址
	EthAddressTy                  // L1 以太坊地址
	Bytes31Ty                     // 31 字节短字符串
	ArrayTy                       // 变长数组 (Array / Span)
	TupleTy                       // 元组
	StructTy                      // 结构体
	EnumTy                        // 枚举
	OptionTy                      // Option
	NonZeroTy                     // NonZero

	numKinds
)

// Type is the resolved representation of a Cairo type. Composite children are
// always resolved *Type values, never names.
// Type 是 Cairo 类型的解析表示。复合类型的子类型总是已解析的 *Type，而不是名称。
type Type struct {
	Elem *Type // 数组 / Option / NonZero 的内部类型
	Size int   // 整数位宽
	T    byte  // 类型标签，使用上面的枚举器

	Name string // 结构体或枚举的声明名称

	// Tuple and struct member fields
	// 元组与结构体成员字段
	TupleElems    []*Type
	TupleRawNames []string // 结构体成员名，命名元组的成员名，普通元组为空

	Variants []Variant // 枚举变体

	stringKind string // 预先计算的规范签名
	width      int    // 最小编码宽度（以 felt 计）
}

// Variant is one arm of an enum. Type is nil when the variant carries no
// payload.
// Variant 是枚举的一个分支。当变体没有负载时 Type 为 nil。
type Variant struct {
	Name string
	Type *Type
}

// HasPayload reports whether the variant encodes a value after its index.
func (v Variant) HasPayload() bool {
	return v.Type != nil
}

var (
	BoolType            = &Type{T: BoolTy, stringKind: "Bool", width: 1}
	U8Type              = newUint(8)
	U16Type             = newUint(16)
	U32Type             = newUint(32)
	U64Type             = newUint(64)
	U128Type            = newUint(128)
	U256Type            = newUint(256)
	U512Type            = newUint(512)
	I8Type              = newInt(8)
	I16Type             = newInt(16)
	I32Type             = newInt(32)
	I64Type             = newInt(64)
	I128Type            = newInt(128)
	FeltType            = &Type{T: FeltTy, stringKind: "Felt", width: 1}
	ContractAddressType = &Type{T: ContractAddressTy, stringKind: "ContractAddress", width: 1}
	ClassHashType       = &Type{T: ClassHashTy, stringKind: "ClassHash", width: 1}
	StorageAddressType  = &Type{T: StorageAddressTy, stringKind: "StorageAddress", width: 1}
	EthAddressType      = &Type{T: EthAddressTy, Size: 160, stringKind: "EthAddress", width: 1}
	Bytes31Type         = &Type{T: Bytes31Ty, Size: 248, stringKind: "Bytes31", width: 1}

	// CallType is the account call struct used by __execute__ and __validate__.
	// CallType 是 __execute__ 和 __validate__ 使用的账户调用结构体。
	CallType = NewStructType("Call",
		[]string{"to", "selector", "calldata"},
		[]*Type{ContractAddressType, FeltType, NewArrayType(FeltType)})
)

func newUint(size int) *Type {
	width := 1
	switch size {
	case 256:
		width = 2
	case 512:
		width = 4
	}
	return &Type{T: UintTy, Size: size, stringKind: fmt.Sprintf("U%d", size), width: width}
}

func newInt(size int) *Type {
	return &Type{T: IntTy, Size: size, stringKind: fmt.Sprintf("I%d", size), width: 1}
}

// NewArrayType returns a length-prefixed list of elem.
func NewArrayType(elem *Type) *Type {
	return &Type{T: ArrayTy, Elem: elem, stringKind: "[" + elem.String() + "]", width: 1}
}

// NewOptionType returns Option<elem>.
func NewOptionType(elem *Type) *Type {
	return &Type{T: OptionTy, Elem: elem, stringKind: "Option[" + elem.String() + "]", width: 1}
}

// NewNonZeroType returns NonZero<elem>.
func NewNonZeroType(elem *Type) *Type {
	return &Type{T: NonZeroTy, Elem: elem, stringKind: "NonZero[" + elem.String() + "]", width: elem.width}
}

// NewTupleType returns a tuple of elems. names may be nil for an anonymous
// tuple, otherwise it must have the same length as elems.
// NewTupleType 返回由 elems 组成的元组。names 为 nil 表示匿名元组。
func NewTupleType(elems []*Type, names []string) *Type {
	parts := make([]string, len(elems))
	width := 0
	for i, elem := range elems {
		if names != nil {
			parts[i] = names[i] + ":" + elem.String()
		} else {
			parts[i] = elem.String()
		}
		width += elem.width
	}
	return &Type{
		T:             TupleTy,
		TupleElems:    elems,
		TupleRawNames: names,
		stringKind:    "(" + strings.Join(parts, ",") + ")",
		width:         width,
	}
}

// NewStructType returns a named struct with ordered members.
// NewStructType 返回一个具有有序成员的命名结构体。
func NewStructType(name string, names []string, elems []*Type) *Type {
	parts := make([]string, len(elems))
	width := 0
	for i, elem := range elems {
		parts[i] = names[i] + ":" + elem.String()
		width += elem.width
	}
	return &Type{
		T:             StructTy,
		Name:          name,
		TupleElems:    elems,
		TupleRawNames: names,
		stringKind:    "Struct(" + name + "){" + strings.Join(parts, ",") + "}",
		width:         width,
	}
}

// NewEnumType returns a named enum with ordered variants.
// NewEnumType 返回一个具有有序变体的命名枚举。
func NewEnumType(name string, variants []Variant) *Type {
	parts := make([]string, len(variants))
	payload := -1
	for i, v := range variants {
		if !v.HasPayload() {
			parts[i] = "'" + v.Name + "'"
			payload = 0
			continue
		}
		parts[i] = v.Name + ":" + v.Type.String()
		if payload < 0 || v.Type.width < payload {
			payload = v.Type.width
		}
	}
	if payload < 0 {
		payload = 0
	}
	return &Type{
		T:          EnumTy,
		Name:       name,
		Variants:   variants,
		stringKind: "Enum(" + name + ")[" + strings.Join(parts, ",") + "]",
		width:      1 + payload,
	}
}

// String implements Stringer. It returns the canonical signature of the type,
// which depends only on the type's structure and declared names.
// String 实现 Stringer 接口。返回类型的规范签名，仅取决于类型的结构和声明名称。
func (t *Type) String() string {
	return t.stringKind
}

// Width returns the minimum number of felts an encoded value of t occupies.
func (t *Type) Width() int {
	return t.width
}

// VariantIndex returns the index of the named variant, or -1.
func (t *Type) VariantIndex(name string) int {
	for i, v := range t.Variants {
		if v.Name == name {
			return i
		}
	}
	return -1
}

var (
	maxEthAddress = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 160), common.Big1)
	maxBytes31    = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 248), common.Big1)
	maxFelt       = new(big.Int).Sub(felt.Modulus(), common.Big1)
)

// bounds returns the inclusive value range for integer-like primitives.
// bounds 返回类整数原始类型的闭区间取值范围。
func (t *Type) bounds() (lo, hi *big.Int) {
	switch t.T {
	case BoolTy:
		return common.Big0, common.Big1
	case UintTy:
		return common.Big0, new(big.Int).Sub(new(big.Int).Lsh(common.Big1, uint(t.Size)), common.Big1)
	case IntTy:
		half := new(big.Int).Lsh(common.Big1, uint(t.Size-1))
		return new(big.Int).Neg(half), new(big.Int).Sub(half, common.Big1)
	case EthAddressTy:
		return common.Big0, maxEthAddress
	case Bytes31Ty:
		return common.Big0, maxBytes31
	default:
		return common.Big0, maxFelt
	}
}

// isPrimitive reports whether t occupies a fixed number of felts and has no
// children.
func (t *Type) isPrimitive() bool {
	return t.T < ArrayTy
}

// TypeLookup resolves the name of a user defined struct or enum.
// TypeLookup 解析用户定义的结构体或枚举名称。
type TypeLookup func(name string) (*Type, error)

// coreTypes maps the builtin type paths, plus the legacy Cairo 0 spellings, to
// their resolved types.
var coreTypes = map[string]*Type{
	"core::bool":           BoolType,
	"core::integer::u8":    U8Type,
	"core::integer::u16":   U16Type,
	"core::integer::u32":   U32Type,
	"core::integer::usize": U32Type,
	"core::integer::u64":   U64Type,
	"core::integer::u128":  U128Type,
	"core::integer::u256":  U256Type,
	"core::integer::u512":  U512Type,
	"core::integer::i8":    I8Type,
	"core::integer::i16":   I16Type,
	"core::integer::i32":   I32Type,
	"core::integer::i64":   I64Type,
	"core::integer::i128":  I128Type,
	"core::felt252":        FeltType,
	"core::bytes_31::bytes31":                           Bytes31Type,
	"core::starknet::contract_address::ContractAddress": ContractAddressType,
	"core::starknet::class_hash::ClassHash":             ClassHashType,
	"core::starknet::storage_access::StorageAddress":    StorageAddressType,
	"core::starknet::eth_address::EthAddress":           EthAddressType,
	"core::starknet::account::Call":                     CallType,

	"felt":    FeltType,
	"Uint256": U256Type,
}

// genericWrappers are the builtin single-argument generics.
var genericWrappers = map[string]func(*Type) *Type{
	"core::array::Array":      NewArrayType,
	"core::array::Span":       NewArrayType,
	"core::option::Option":    NewOptionType,
	"core::zeroable::NonZero": NewNonZeroType,
	"Array":                   NewArrayType,
	"Span":                    NewArrayType,
	"Option":                  NewOptionType,
	"NonZero":                 NewNonZeroType,
}

// NewType parses a Cairo type string, e.g.
// "core::array::Array::<(core::felt252, core::integer::u256)>". Names that are
// neither builtin nor generic wrappers are resolved through lookup.
// NewType 解析 Cairo 类型字符串。既不是内置类型也不是泛型包装的名称通过 lookup 解析。
func NewType(t string, lookup TypeLookup) (*Type, error) {
	s := strings.TrimSpace(t)
	for strings.HasPrefix(s, "@") {
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return nil, fmt.Errorf("empty type string %q", t)
	}
	if core, ok := coreTypes[s]; ok {
		return core, nil
	}
	if s[0] == '(' {
		return newTupleFromString(s, lookup)
	}
	if strings.HasSuffix(s, "*") {
		// Cairo 0 pointer syntax, the length travels as a prefix
		elem, err := NewType(s[:len(s)-1], lookup)
		if err != nil {
			return nil, err
		}
		return NewArrayType(elem), nil
	}
	if open := strings.IndexByte(s, '<'); open >= 0 {
		inner, err := genericArgument(s, open)
		if err != nil {
			return nil, err
		}
		outer := strings.TrimSuffix(s[:open], "::")
		if wrap, ok := genericWrappers[outer]; ok {
			args, err := splitTopLevel(inner)
			if err != nil {
				return nil, err
			}
			if len(args) != 1 {
				return nil, fmt.Errorf("%s takes one type argument, got %d in %q", outer, len(args), s)
			}
			elem, err := NewType(args[0], lookup)
			if err != nil {
				return nil, err
			}
			return wrap(elem), nil
		}
		// user defined generics are declared under their full name
	} else if !isTypePath(s) {
		return nil, fmt.Errorf("malformed type %q", s)
	}
	if lookup == nil {
		return nil, fmt.Errorf("undefined type %q", s)
	}
	return lookup(s)
}

func newTupleFromString(s string, lookup TypeLookup) (*Type, error) {
	end, err := matchingClose(s, 0)
	if err != nil {
		return nil, err
	}
	if end != len(s)-1 {
		return nil, fmt.Errorf("unexpected trailing characters in tuple %q", s)
	}
	inner := strings.TrimSpace(s[1:end])
	if inner == "" {
		return NewTupleType(nil, nil), nil
	}
	parts, err := splitTopLevel(inner)
	if err != nil {
		return nil, err
	}
	// single element tuples are printed with a trailing comma
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	var (
		elems = make([]*Type, len(parts))
		names []string
		named bool
	)
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty tuple member in %q", s)
		}
		name, typ := splitMemberName(part)
		if i == 0 {
			named = name != ""
		} else if named != (name != "") {
			return nil, fmt.Errorf("tuple %q mixes named and unnamed members", s)
		}
		if named {
			names = append(names, name)
		}
		if elems[i], err = NewType(typ, lookup); err != nil {
			return nil, err
		}
	}
	return NewTupleType(elems, names), nil
}
