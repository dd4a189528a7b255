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
	"errors"
	"fmt"
	"strings"

	"github.com/NethermindEth/starknet-abi/felt"
)

// Argument holds the name of the argument and the corresponding type.
// Argument 结构体保存了参数的名称和对应的类型。
type Argument struct {
	Name string // 参数名称
	Type *Type  // 参数类型
	Key  bool   // 仅用于事件，表示该参数编码在 keys 中而不是 data 中
}

// Arguments 是 Argument 的切片。
type Arguments []Argument

// ArgumentMarshaling is the raw JSON shape of a parameter, struct member,
// enum variant or event member.
// ArgumentMarshaling 是参数、结构体成员、枚举变体或事件成员的原始 JSON 形式。
type ArgumentMarshaling struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Kind string `json:"kind,omitempty"` // key, data, nested or flat on event members
}

// String returns the canonical signature of the arguments, name:type pairs
// joined by commas.
func (arguments Arguments) String() string {
	parts := make([]string, len(arguments))
	for i, arg := range arguments {
		parts[i] = arg.Name + ":" + arg.Type.String()
	}
	return strings.Join(parts, ",")
}

// Keys returns the arguments encoded in event keys.
// Keys 返回编码在事件 keys 中的参数。
func (arguments Arguments) Keys() Arguments {
	var ret Arguments
	for _, arg := range arguments {
		if arg.Key {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Data returns the arguments encoded in event data.
// Data 返回编码在事件 data 中的参数。
func (arguments Arguments) Data() Arguments {
	var ret Arguments
	for _, arg := range arguments {
		if !arg.Key {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Types returns the argument types in order.
func (arguments Arguments) Types() []*Type {
	types := make([]*Type, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// Unpack decodes calldata into named values. Every element of calldata must
// be consumed.
// Unpack 将 calldata 解码为命名值。calldata 的每个元素都必须被消耗。
func (arguments Arguments) Unpack(calldata []*felt.Felt) (Values, error) {
	return DecodeFromParams(arguments, calldata)
}

// UnpackIntoMap decodes calldata into a mapping of argument name to value.
// UnpackIntoMap 将 calldata 解码到一个 map[string]any 中，键为参数名，值为参数值。
func (arguments Arguments) UnpackIntoMap(v map[string]any, calldata []*felt.Felt) error {
	if v == nil {
		return errors.New("abi: cannot unpack into a nil map")
	}
	values, err := arguments.Unpack(calldata)
	if err != nil {
		return err
	}
	for _, nv := range values {
		v[nv.Name] = nv.Value
	}
	return nil
}

// Pack encodes positional values, one per argument.
// Pack 按位置编码值，每个参数一个值。
func (arguments Arguments) Pack(args ...any) ([]*felt.Felt, error) {
	return EncodeFromTypes(arguments.Types(), args)
}

// NamedValue is one decoded struct member or parameter.
type NamedValue struct {
	Name  string
	Value any
}

// Values is an ordered list of named values. It is the decoded form of a
// struct and of a parameter list.
// Values 是有序的命名值列表，是结构体和参数列表的解码形式。
type Values []NamedValue

// Get returns the value stored under name.
func (v Values) Get(name string) (any, bool) {
	for _, nv := range v {
		if nv.Name == name {
			return nv.Value, true
		}
	}
	return nil, false
}

// Map returns the values keyed by name. Nested values are left untouched.
func (v Values) Map() map[string]any {
	m := make(map[string]any, len(v))
	for _, nv := range v {
		m[nv.Name] = nv.Value
	}
	return m
}

// Names returns the value names in order.
func (v Values) Names() []string {
	names := make([]string, len(v))
	for i, nv := range v {
		names[i] = nv.Name
	}
	return names
}

// EnumValue is a decoded enum: the selected variant and its payload. Value is
// nil for variants without payload.
// EnumValue 是解码后的枚举：选中的变体及其负载。无负载变体的 Value 为 nil。
type EnumValue struct {
	Variant string
	Value   any
}

func (e EnumValue) String() string {
	if e.Value == nil {
		return e.Variant
	}
	return fmt.Sprintf("%s(%v)", e.Variant, e.Value)
}

// OptionValue is a decoded Option.
// OptionValue 是解码后的 Option。
type OptionValue struct {
	Present bool
	Value   any
}

// Some wraps v as a present option.
func Some(v any) OptionValue { return OptionValue{Present: true, Value: v} }

// None is the absent option.
var None = OptionValue{}

func (o OptionValue) String() string {
	if !o.Present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.Value)
}
