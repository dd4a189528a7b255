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

// Package dispatch implements decoding of calls and events across many
// contract classes at once.
// package dispatch 实现了同时跨多个合约类的调用和事件解码。
package dispatch

import (
	"github.com/NethermindEth/starknet-abi/abi"
	"github.com/NethermindEth/starknet-abi/felt"
)

// ClassInfo describes a contract class registered with a dispatcher.
// ClassInfo 描述一个在调度器中注册的合约类。
type ClassInfo struct {
	ClassHash *felt.Felt `json:"classHash"` // Identifying hash of the class // 合约类的标识哈希
	ABIName   string     `json:"abiName"`   // Optional human readable name. // 可选的可读名称。
	Functions int        `json:"functions"` // Number of dispatchable entry points // 可调度的入口点数量
	Events    int        `json:"events"`    // Number of dispatchable event selectors // 可调度的事件选择器数量
}

// UnknownOperation is the name of a multicall operation whose target contract
// or class is not known to the dispatcher.
const UnknownOperation = "Unknown"

// Operation is one call of an account multicall. Params is nil for unknown
// operations, which only carry the raw calldata.
// Operation 是账户多调用中的一个调用。对于未知操作，Params 为 nil，只携带原始 calldata。
type Operation struct {
	Name     string     // Entry point name, or UnknownOperation // 入口点名称，或 UnknownOperation
	ABIName  string     // Name of the class ABI the call decoded against // 解码所依据的合约类 ABI 名称
	Contract *felt.Felt // Target contract address // 目标合约地址
	Class    *felt.Felt // Class the contract ran at the decoded block // 合约在解码区块运行的合约类
	Selector *felt.Felt // Entry point selector // 入口点选择器
	Params   abi.Values // Decoded inputs // 解码后的输入
	Calldata []*felt.Felt
}

// Account entry point selectors. Calls to these entry points decode without
// the account's ABI.
// 账户入口点选择器。对这些入口点的调用无需账户的 ABI 即可解码。
var (
	ExecuteSelector         = abi.Selector("__execute__")
	ValidateSelector        = abi.Selector("__validate__")
	ValidateDeploySelector  = abi.Selector("__validate_deploy__")
	ValidateDeclareSelector = abi.Selector("__validate_declare__")
)

// multicallTypes is the calldata layout of __execute__ and __validate__.
var multicallTypes = []*abi.Type{abi.NewArrayType(abi.CallType)}

// coreFunctions maps the account entry point selectors to their functions.
// Their return values are never decoded.
var coreFunctions = func() map[felt.Felt]*abi.Function {
	calls := abi.Arguments{{Name: "calls", Type: multicallTypes[0]}}
	fns := []*abi.Function{
		abi.NewFunction("__execute__", calls, nil, "external"),
		abi.NewFunction("__validate__", calls, nil, "external"),
		abi.NewFunction("__validate_deploy__", nil, nil, "external"),
		abi.NewFunction("__validate_declare__", nil, nil, "external"),
	}
	m := make(map[felt.Felt]*abi.Function, len(fns))
	for _, fn := range fns {
		m[*fn.Selector] = fn
	}
	return m
}()

// ClassEventType represents the different event types that can be fired by
// the class subscription subsystem.
// ClassEventType 代表了可以由合约类订阅子系统触发的不同事件类型。
type ClassEventType int

const (
	// ClassAdded is fired when a class is registered, either explicitly or by a
	// lazy load from the ABI source.
	// 当合约类被注册（显式注册或从 ABI 数据源延迟加载）时，会触发 ClassAdded。
	ClassAdded ClassEventType = iota

	// ClassEvicted is fired when a class is dropped to stay within the
	// configured class limit.
	// 当为保持在配置的合约类上限内而丢弃合约类时，会触发 ClassEvicted。
	ClassEvicted
)

// ClassEvent is an event fired by a dispatcher when a class arrives or
// departs.
// ClassEvent 是调度器在合约类到达或离开时触发的事件。
type ClassEvent struct {
	Class ClassInfo      // Class that arrived or departed. // 到达或离开的合约类。
	Kind  ClassEventType // Event type that happened. // 发生的事件类型。
}
