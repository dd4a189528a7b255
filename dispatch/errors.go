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

package dispatch

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starknet-abi/felt"
)

// ErrUnknownClass is returned for any requested operation on a class hash that
// is neither registered nor available from the configured ABI source.
// ErrUnknownClass 在请求的类哈希既未注册、也无法从配置的 ABI 数据源获取时返回。
var ErrUnknownClass = errors.New("unknown class")

// ErrUnknownSelector is returned when a registered class has no function or
// event with the requested selector.
// ErrUnknownSelector 在已注册的合约类中没有指定选择器的函数或事件时返回。
var ErrUnknownSelector = errors.New("unknown selector")

// ErrUnknownContract is returned when a contract address has no recorded
// class history.
// ErrUnknownContract 在合约地址没有记录的类历史时返回。
var ErrUnknownContract = errors.New("unknown contract")

// ErrMissingClassHash is returned when an ABI without class hash is
// registered.
var ErrMissingClassHash = errors.New("abi has no class hash")

// NoImplementationError is returned when a contract is decoded at a block
// before the first class it is known to run.
//
// This usually means the contract history was registered incompletely.
// NoImplementationError 在合约于其已知的第一个合约类之前的区块被解码时返回。
//
// 这通常意味着合约历史注册不完整。
type NoImplementationError struct {
	Contract *felt.Felt // Contract address // 合约地址
	Block    uint64     // Block the call was decoded at // 解码调用所在的区块
	First    uint64     // First block with a known implementation // 第一个有已知实现的区块
}

// NewNoImplementationError creates a new error for a contract decoded before
// its first known implementation.
// NewNoImplementationError 为在其第一个已知实现之前被解码的合约创建一个新错误。
func NewNoImplementationError(contract *felt.Felt, block, first uint64) error {
	return &NoImplementationError{
		Contract: contract,
		Block:    block,
		First:    first,
	}
}

// Error implements the standard error interface.
// Error 实现标准错误接口。
func (err *NoImplementationError) Error() string {
	return fmt.Sprintf("contract %v has no implementation before block %d, cannot decode at block %d",
		err.Contract, err.First, err.Block)
}

// OperationError is returned when one call of a multicall cannot be decoded
// against the class its contract ran at the requested block.
// OperationError 在多调用中的某个调用无法按其合约在指定区块所运行的合约类解码时返回。
type OperationError struct {
	Index    int        // Position of the call in the multicall // 调用在多调用中的位置
	Contract *felt.Felt // Target contract // 目标合约
	Class    *felt.Felt // Class the contract ran at the block, nil if unresolved // 合约在该区块运行的合约类
	Selector *felt.Felt // Entry point selector // 入口点选择器
	Err      error
}

// Error implements the standard error interface.
func (err *OperationError) Error() string {
	if err.Class == nil {
		return fmt.Sprintf("call %d to contract %v, selector %v: %v", err.Index, err.Contract, err.Selector, err.Err)
	}
	return fmt.Sprintf("call %d to contract %v (class %v), selector %v: %v",
		err.Index, err.Contract, err.Class, err.Selector, err.Err)
}

func (err *OperationError) Unwrap() error { return err.Err }
