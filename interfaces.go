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

// Package starknet defines the interfaces the ABI codec uses to reach outside
// collaborators.
// Package starknet 定义了 ABI 编解码器访问外部协作者所使用的接口。
package starknet

import (
	"context"
	"errors"

	"github.com/NethermindEth/starknet-abi/felt"
)

// NotFound is returned by ABISource implementations if the requested class
// does not exist.
// NotFound 如果请求的合约类不存在，ABISource 的实现将返回 NotFound。
var NotFound = errors.New("not found")

// ABISource provides the raw JSON ABI of declared contract classes. It is used
// by the dispatcher to load classes lazily, the first time a call or event of
// an unregistered class is decoded.
//
// The returned error is NotFound if the class is unknown to the source.
// ABISource 提供已声明合约类的原始 JSON ABI。调度器在第一次解码未注册合约类的调用或事件时，
// 使用它来延迟加载合约类。
//
// 如果该类对数据源未知，返回的错误为 NotFound。
type ABISource interface {
	ClassABI(ctx context.Context, classHash *felt.Felt) ([]byte, error)
}

// ABISourceFunc adapts an ordinary function to the ABISource interface.
// ABISourceFunc 将普通函数适配为 ABISource 接口。
type ABISourceFunc func(ctx context.Context, classHash *felt.Felt) ([]byte, error)

// ClassABI calls f(ctx, classHash).
func (f ABISourceFunc) ClassABI(ctx context.Context, classHash *felt.Felt) ([]byte, error) {
	return f(ctx, classHash)
}

// ABINamer is optionally implemented by an ABISource that knows a human
// readable name for a class, e.g. the contract it was declared for.
// ABIName 可由知道合约类可读名称的 ABISource 选择性实现。
type ABINamer interface {
	ABIName(classHash *felt.Felt) string
}
