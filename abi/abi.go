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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/NethermindEth/starknet-abi/felt"
	mapset "github.com/deckarep/golang-set/v2"
)

var (
	// ErrFunctionNotFound is wrapped in a DispatchError when a function name or
	// selector is not part of the ABI.
	ErrFunctionNotFound = errors.New("abi: function not found")
	// ErrEventNotFound is wrapped in a DispatchError when an event name or
	// selector is not part of the ABI.
	ErrEventNotFound = errors.New("abi: event not found")
)

// StarknetAbi holds the resolved schema of one contract class. It is
// immutable once returned by Parse and safe for concurrent use.
// StarknetAbi 保存一个合约类的已解析模式。Parse 返回后不可变，可安全地并发使用。
type StarknetAbi struct {
	Name      string
	ClassHash *felt.Felt

	Functions   map[string]*Function
	Constructor *Function
	L1Handlers  map[string]*Function
	Events      map[string]*Event

	// Interfaces groups function names by the interface declaring them.
	// Implemented lists the interfaces named by impl entries.
	// Interfaces 按声明它们的接口对函数名进行分组。Implemented 列出 impl 条目中指定的接口。
	Interfaces  map[string]*Interface
	Implemented mapset.Set[string]

	// Types holds every user defined struct and enum by full name.
	Types map[string]*Type

	functionsBySelector map[felt.Felt]*Function
	eventsBySelector    map[felt.Felt]*Event
}

// Interface is a named group of functions. It carries no type data of its
// own; the functions live in StarknetAbi.Functions.
// Interface 是一组具名的函数，本身不携带类型数据。
type Interface struct {
	Name      string
	Functions mapset.Set[string]
}

// abiEntry is the raw JSON shape of every ABI entry kind.
type abiEntry struct {
	Type            string               `json:"type"`
	Name            string               `json:"name"`
	Inputs          []ArgumentMarshaling `json:"inputs"`
	Outputs         []ArgumentMarshaling `json:"outputs"`
	StateMutability string               `json:"state_mutability"`
	Members         []ArgumentMarshaling `json:"members"`
	Variants        []ArgumentMarshaling `json:"variants"`
	Items           []abiEntry           `json:"items"`
	InterfaceName   string               `json:"interface_name"`
	Kind            string               `json:"kind"`
	Keys            []ArgumentMarshaling `json:"keys"`
	Data            []ArgumentMarshaling `json:"data"`
}

// groupedEntries partitions an ABI by entry kind, preserving relative order.
type groupedEntries struct {
	typeDefs     []abiEntry
	functions    []abiEntry
	constructors []abiEntry
	l1Handlers   []abiEntry
	events       []abiEntry
	interfaces   []abiEntry
	impls        []abiEntry
}

func groupEntries(entries []abiEntry) (*groupedEntries, error) {
	g := new(groupedEntries)
	for i, e := range entries {
		switch e.Type {
		case "struct", "enum":
			g.typeDefs = append(g.typeDefs, e)
		case "function":
			g.functions = append(g.functions, e)
		case "constructor":
			g.constructors = append(g.constructors, e)
		case "l1_handler":
			g.l1Handlers = append(g.l1Handlers, e)
		case "event":
			g.events = append(g.events, e)
		case "interface":
			g.interfaces = append(g.interfaces, e)
		case "impl":
			g.impls = append(g.impls, e)
		case "":
			return nil, &InvalidSchemaError{Entry: fmt.Sprintf("entry %d", i), Reason: "missing type"}
		default:
			return nil, &InvalidSchemaError{Entry: e.Name, Reason: fmt.Sprintf("unknown entry type %q", e.Type)}
		}
	}
	return g, nil
}

// JSON returns a parsed ABI read from reader.
// JSON 从 reader 中读取并返回解析后的 ABI。
func JSON(reader io.Reader, classHash *felt.Felt, name string) (*StarknetAbi, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return Parse(raw, classHash, name)
}

// Parse builds the resolved schema of a contract class from its JSON ABI.
// Both the current list form and Cairo 0 ABIs are accepted.
// Parse 根据合约类的 JSON ABI 构建已解析的模式。
func Parse(raw []byte, classHash *felt.Felt, name string) (*StarknetAbi, error) {
	var entries []abiEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &InvalidSchemaError{Reason: "malformed ABI JSON: " + err.Error(), Err: err}
	}
	g, err := groupEntries(entries)
	if err != nil {
		return nil, err
	}
	types, err := resolveTypeDefs(g.typeDefs)
	if err != nil {
		return nil, err
	}
	abi := &StarknetAbi{
		Name:                name,
		ClassHash:           classHash,
		Functions:           make(map[string]*Function),
		L1Handlers:          make(map[string]*Function),
		Events:              make(map[string]*Event),
		Interfaces:          make(map[string]*Interface),
		Implemented:         mapset.NewSet[string](),
		Types:               types,
		functionsBySelector: make(map[felt.Felt]*Function),
		eventsBySelector:    make(map[felt.Felt]*Event),
	}
	lookup := func(n string) (*Type, error) {
		if t, ok := types[n]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("undefined type %q", n)
	}
	for _, e := range g.functions {
		if err := abi.addFunction(e, lookup); err != nil {
			return nil, err
		}
	}
	for _, iface := range g.interfaces {
		if iface.Name == "" || iface.Items == nil {
			return nil, &InvalidSchemaError{Entry: iface.Name, Reason: "interface missing name or items"}
		}
		group := &Interface{Name: iface.Name, Functions: mapset.NewSet[string]()}
		for _, item := range iface.Items {
			if item.Type != "function" {
				return nil, &InvalidSchemaError{Entry: iface.Name, Reason: fmt.Sprintf("unexpected interface item %q", item.Type)}
			}
			if err := abi.addFunction(item, lookup); err != nil {
				return nil, err
			}
			group.Functions.Add(item.Name)
		}
		abi.Interfaces[iface.Name] = group
	}
	switch len(g.constructors) {
	case 0:
	case 1:
		if abi.Constructor, err = parseFunction(g.constructors[0], lookup); err != nil {
			return nil, err
		}
		abi.Constructor.ABIName = name
	default:
		return nil, &InvalidSchemaError{Entry: "constructor", Reason: "multiple constructors"}
	}
	for _, e := range g.l1Handlers {
		fn, err := parseFunction(e, lookup)
		if err != nil {
			return nil, err
		}
		fn.ABIName = name
		abi.L1Handlers[fn.Name] = fn
		abi.functionsBySelector[*fn.Selector] = fn
	}
	for _, e := range g.events {
		if err := abi.addEvent(e, lookup); err != nil {
			return nil, err
		}
	}
	for _, impl := range g.impls {
		if impl.InterfaceName == "" {
			return nil, &InvalidSchemaError{Entry: impl.Name, Reason: "impl missing interface_name"}
		}
		abi.Implemented.Add(impl.InterfaceName)
	}
	return abi, nil
}

func (abi *StarknetAbi) addFunction(e abiEntry, lookup TypeLookup) error {
	fn, err := parseFunction(e, lookup)
	if err != nil {
		return err
	}
	if prev, ok := abi.Functions[fn.Name]; ok {
		if prev.String() != fn.String() {
			return &InvalidSchemaError{Entry: fn.Name, Reason: "conflicting function definitions"}
		}
		return nil
	}
	fn.ABIName = abi.Name
	abi.Functions[fn.Name] = fn
	abi.functionsBySelector[*fn.Selector] = fn
	return nil
}

// parseFunction builds a function, constructor or l1 handler entry.
func parseFunction(e abiEntry, lookup TypeLookup) (*Function, error) {
	if e.Name == "" {
		return nil, &InvalidSchemaError{Entry: e.Type, Reason: "missing name"}
	}
	if e.Inputs == nil {
		return nil, &InvalidSchemaError{Entry: e.Name, Reason: "missing inputs"}
	}
	inputs, err := parseParams(e.Inputs, lookup)
	if err != nil {
		return nil, newSchemaError(e.Name, err)
	}
	outputs, err := parseParams(e.Outputs, lookup)
	if err != nil {
		return nil, newSchemaError(e.Name, fmt.Errorf("outputs: %w", err))
	}
	return NewFunction(e.Name, inputs, outputs.Types(), e.StateMutability), nil
}

// parseParams resolves a parameter list. Cairo 0 pointer parameters absorb
// the preceding <name>_len or <name>_size parameter, which is the array's
// length prefix on the wire.
// parseParams 解析参数列表。Cairo 0 的指针参数会吸收前面的 <name>_len 或 <name>_size 参数，它就是数组在线路上的长度前缀。
func parseParams(params []ArgumentMarshaling, lookup TypeLookup) (Arguments, error) {
	args := make(Arguments, 0, len(params))
	for i, p := range params {
		if p.Type == "" {
			return nil, fmt.Errorf("parameter %d missing type", i)
		}
		t, err := NewType(p.Type, lookup)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		if strings.HasSuffix(strings.TrimSpace(p.Type), "*") && len(args) > 0 {
			prev := args[len(args)-1]
			if (prev.Name == name+"_len" || prev.Name == name+"_size") && prev.Type.T == FeltTy {
				args = args[:len(args)-1]
			}
		}
		args = append(args, Argument{Name: name, Type: t, Key: p.Kind == "key"})
	}
	return args, nil
}

func (abi *StarknetAbi) addEvent(e abiEntry, lookup TypeLookup) error {
	if e.Name == "" {
		return &InvalidSchemaError{Entry: "event", Reason: "missing name"}
	}
	var (
		members Arguments
		err     error
	)
	switch {
	case e.Kind != "":
		switch e.Kind {
		case "enum":
			// wrapper enums only route to their variant events
			return nil
		case "struct":
		default:
			return &InvalidSchemaError{Entry: e.Name, Reason: fmt.Sprintf("unknown event kind %q", e.Kind)}
		}
		if e.Members == nil {
			return &InvalidSchemaError{Entry: e.Name, Reason: "missing members"}
		}
		for _, m := range e.Members {
			if m.Kind != "key" && m.Kind != "data" {
				return &InvalidSchemaError{Entry: e.Name, Reason: fmt.Sprintf("member %s has unsupported kind %q", m.Name, m.Kind)}
			}
		}
		members, err = parseParams(e.Members, lookup)
	case e.Keys != nil || e.Data != nil:
		var keys, data Arguments
		if keys, err = parseParams(e.Keys, lookup); err != nil {
			break
		}
		if data, err = parseParams(e.Data, lookup); err != nil {
			break
		}
		for i := range keys {
			keys[i].Key = true
		}
		members = append(keys, data...)
	case e.Inputs != nil:
		members, err = parseParams(e.Inputs, lookup)
	default:
		return &InvalidSchemaError{Entry: e.Name, Reason: "missing members"}
	}
	if err != nil {
		return newSchemaError(e.Name, err)
	}
	name := ResolveNameConflict(ShortName(e.Name), func(n string) bool {
		_, ok := abi.Events[n]
		return ok
	})
	event := NewEvent(name, e.Name, members)
	event.ABIName = abi.Name
	abi.Events[name] = event
	if _, ok := abi.eventsBySelector[*event.Selector]; !ok {
		abi.eventsBySelector[*event.Selector] = event
	}
	return nil
}

// FunctionBySelector looks up a function or l1 handler by selector.
// FunctionBySelector 根据选择器查找函数或 L1 处理器。
func (abi *StarknetAbi) FunctionBySelector(selector *felt.Felt) (*Function, error) {
	if selector == nil {
		return nil, &DispatchError{Kind: "function", Name: "<nil>", Err: ErrFunctionNotFound}
	}
	if fn, ok := abi.functionsBySelector[*selector]; ok {
		return fn, nil
	}
	return nil, &DispatchError{Kind: "function", Name: selector.String(), Err: ErrFunctionNotFound}
}

// EventBySelector looks up an event by the selector emitted in keys[0].
// EventBySelector 根据 keys[0] 中发出的选择器查找事件。
func (abi *StarknetAbi) EventBySelector(selector *felt.Felt) (*Event, error) {
	if selector == nil {
		return nil, &DispatchError{Kind: "event", Name: "<nil>", Err: ErrEventNotFound}
	}
	if ev, ok := abi.eventsBySelector[*selector]; ok {
		return ev, nil
	}
	return nil, &DispatchError{Kind: "event", Name: selector.String(), Err: ErrEventNotFound}
}

func (abi *StarknetAbi) function(name string) (*Function, error) {
	if fn, ok := abi.Functions[name]; ok {
		return fn, nil
	}
	if fn, ok := abi.L1Handlers[name]; ok {
		return fn, nil
	}
	if abi.Constructor != nil && abi.Constructor.Name == name {
		return abi.Constructor, nil
	}
	return nil, &DispatchError{Kind: "function", Name: name, Err: ErrFunctionNotFound}
}

func (abi *StarknetAbi) event(name string) (*Event, error) {
	if ev, ok := abi.Events[name]; ok {
		return ev, nil
	}
	return nil, &DispatchError{Kind: "event", Name: name, Err: ErrEventNotFound}
}

// DecodeFunction decodes the calldata of the named function.
// DecodeFunction 解码指定函数的 calldata。
func (abi *StarknetAbi) DecodeFunction(name string, calldata []*felt.Felt) (*DecodedFunction, error) {
	fn, err := abi.function(name)
	if err != nil {
		return nil, err
	}
	return fn.Decode(calldata)
}

// DecodeFunctionWithResult decodes the calldata and the returned values of
// the named function.
func (abi *StarknetAbi) DecodeFunctionWithResult(name string, calldata, result []*felt.Felt) (*DecodedFunction, error) {
	fn, err := abi.function(name)
	if err != nil {
		return nil, err
	}
	return fn.DecodeWithResult(calldata, result)
}

// EncodeFunction encodes named inputs of the named function into calldata.
// EncodeFunction 将指定函数的命名输入编码为 calldata。
func (abi *StarknetAbi) EncodeFunction(name string, values any) ([]*felt.Felt, error) {
	fn, err := abi.function(name)
	if err != nil {
		return nil, err
	}
	return fn.Encode(values)
}

// DecodeEvent decodes an emitted event of the named kind.
// DecodeEvent 解码指定类型的已发出事件。
func (abi *StarknetAbi) DecodeEvent(name string, keys, data []*felt.Felt) (*DecodedEvent, error) {
	ev, err := abi.event(name)
	if err != nil {
		return nil, err
	}
	return ev.Decode(keys, data)
}

// DecodeEventBySelector decodes an emitted event, selecting the event by
// keys[0].
func (abi *StarknetAbi) DecodeEventBySelector(keys, data []*felt.Felt) (*DecodedEvent, error) {
	if len(keys) == 0 || keys[0] == nil {
		return nil, &DispatchError{Kind: "event", Err: &CalldataArityError{What: "event keys", Want: 1, Got: 0}}
	}
	ev, err := abi.EventBySelector(keys[0])
	if err != nil {
		return nil, err
	}
	return ev.Decode(keys, data)
}

// EncodeEvent encodes named members of the named event into keys and data.
func (abi *StarknetAbi) EncodeEvent(name string, values any) (keys, data []*felt.Felt, err error) {
	ev, err := abi.event(name)
	if err != nil {
		return nil, nil, err
	}
	return ev.Encode(values)
}
