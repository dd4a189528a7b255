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
	"strings"

	"github.com/NethermindEth/starknet-abi/felt"
)

// Event is an event a contract class can emit. keys[0] of an emitted event is
// the selector; the key members follow it and the data members are encoded
// in the event data.
// Event 是合约类可以发出的事件。发出事件的 keys[0] 是选择器，随后是 key 成员，data 成员编码在事件数据中。
type Event struct {
	// Name is the event name used for internal representation. It's derived from
	// the last path segment of the raw name and a suffix will be added when two
	// events share that segment.
	//
	// e.g.
	// * openzeppelin::token::erc20::Transfer
	// * openzeppelin::token::erc721::Transfer
	// The first event will be resolved as Transfer while the second one
	// will be resolved as Transfer0.
	// Name 是用于内部表示的事件名称。它源自原始名称的最后一段路径，在两个事件共享该段时会添加后缀。
	Name string

	// RawName is the raw event name parsed from ABI.
	// RawName 是从 ABI 解析的原始事件名称。
	RawName string
	ABIName string

	Keys Arguments
	Data Arguments

	// Parameters lists every member name in declaration order.
	// Parameters 按声明顺序列出所有成员名称。
	Parameters []string

	// Selector is the starknet keccak of the short event name, emitted as keys[0].
	// Selector 是事件短名称的 starknet keccak 哈希，作为 keys[0] 发出。
	Selector *felt.Felt

	str string
}

// NewEvent creates a new Event. members keep their declaration order; members
// flagged Key are encoded in keys, the rest in data. It also precomputes the
// selector and the canonical signature.
// NewEvent 创建一个新的 Event 对象。它还预先计算选择器和规范签名。
func NewEvent(name, rawName string, members Arguments) *Event {
	var (
		params = make([]string, len(members))
		sig    = make([]string, len(members))
	)
	for i, m := range members {
		params[i] = m.Name
		if m.Key {
			sig[i] = "<" + m.Name + ">:" + m.Type.String()
		} else {
			sig[i] = m.Name + ":" + m.Type.String()
		}
	}
	return &Event{
		Name:       name,
		RawName:    rawName,
		Keys:       members.Keys(),
		Data:       members.Data(),
		Parameters: params,
		Selector:   Selector(ShortName(rawName)),
		str:        "Event(" + strings.Join(sig, ",") + ")",
	}
}

// String returns the canonical signature of the event. Key members are
// wrapped in angle brackets.
// String 返回事件的规范签名。key 成员用尖括号括起来。
func (e *Event) String() string {
	return e.str
}

// DecodedEvent is the result of decoding an emitted event. Data holds every
// member in declaration order, keys and data merged.
type DecodedEvent struct {
	ABIName string
	Name    string
	Data    Values
}

func (e *Event) wrap(err error) error {
	return &DispatchError{Kind: "event", Name: e.Name, Err: err}
}

// Decode decodes an emitted event. keys[0] must be the event selector; the
// remaining keys and the data are decoded independently and must both be
// fully consumed.
// Decode 解码已发出的事件。keys[0] 必须是事件选择器；其余的 keys 和 data 分别独立解码，且都必须被完全消耗。
func (e *Event) Decode(keys, data []*felt.Felt) (*DecodedEvent, error) {
	if len(keys) == 0 {
		return nil, e.wrap(&CalldataArityError{What: "event keys", Want: len(e.Keys) + 1, Got: 0})
	}
	if keys[0] == nil || !keys[0].Equal(e.Selector) {
		got := "<nil>"
		if keys[0] != nil {
			got = keys[0].String()
		}
		return nil, e.wrap(&TypeDecodeError{
			Type:   "Selector",
			Path:   "keys[0]",
			Reason: "selector " + got + " does not match " + e.Selector.String(),
		})
	}
	return e.DecodeBody(keys[1:], data)
}

// DecodeBody decodes event keys without the selector element, and data.
func (e *Event) DecodeBody(keys, data []*felt.Felt) (*DecodedEvent, error) {
	decodedKeys, err := DecodeFromParams(e.Keys, keys)
	if err != nil {
		return nil, e.wrap(withPath(err, "keys"))
	}
	decodedData, err := DecodeFromParams(e.Data, data)
	if err != nil {
		return nil, e.wrap(withPath(err, "data"))
	}
	values := make(Values, 0, len(e.Parameters))
	for _, name := range e.Parameters {
		if v, ok := decodedKeys.Get(name); ok {
			values = append(values, NamedValue{Name: name, Value: v})
		} else if v, ok := decodedData.Get(name); ok {
			values = append(values, NamedValue{Name: name, Value: v})
		}
	}
	return &DecodedEvent{ABIName: e.ABIName, Name: e.Name, Data: values}, nil
}

// Encode encodes named event members into keys, selector first, and data.
// Encode 将命名的事件成员编码为 keys（选择器在前）和 data。
func (e *Event) Encode(values any) (keys, data []*felt.Felt, err error) {
	lookup, count, ok := namedLookup(values)
	if !ok {
		return nil, nil, e.wrap(&TypeEncodeError{Type: e.str, Value: values, Reason: "expected Values or map[string]any"})
	}
	if count != len(e.Parameters) {
		return nil, nil, e.wrap(&CalldataArityError{What: "event member count", Want: len(e.Parameters), Got: count})
	}
	split := func(args Arguments) map[string]any {
		m := make(map[string]any, len(args))
		for _, arg := range args {
			if v, ok := lookup(arg.Name); ok {
				m[arg.Name] = v
			}
		}
		return m
	}
	if keys, err = EncodeFromParams(e.Keys, split(e.Keys)); err != nil {
		return nil, nil, e.wrap(withPath(err, "keys"))
	}
	if data, err = EncodeFromParams(e.Data, split(e.Data)); err != nil {
		return nil, nil, e.wrap(withPath(err, "data"))
	}
	sel := *e.Selector
	return append([]*felt.Felt{&sel}, keys...), data, nil
}
