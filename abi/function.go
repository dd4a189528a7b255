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
	"strings"

	"github.com/NethermindEth/starknet-abi/felt"
)

// Function is an entry point of a contract class: an external or view
// function, an l1 handler or the constructor.
// Function 是合约类的入口点：外部函数、视图函数、L1 处理器或构造函数。
type Function struct {
	Name            string
	ABIName         string // 所属 ABI 的名称，可能为空
	Inputs          Arguments
	Outputs         []*Type
	StateMutability string // view or external, empty for Cairo 0 ABIs

	// Selector is the starknet keccak of the function name.
	// Selector 是函数名的 starknet keccak 哈希。
	Selector *felt.Felt

	str string
}

// NewFunction creates a new Function and precomputes its selector and
// canonical signature.
// NewFunction 创建一个新的 Function，并预先计算其选择器和规范签名。
func NewFunction(name string, inputs Arguments, outputs []*Type, mutability string) *Function {
	outs := make([]string, len(outputs))
	for i, out := range outputs {
		outs[i] = out.String()
	}
	return &Function{
		Name:            name,
		Inputs:          inputs,
		Outputs:         outputs,
		StateMutability: mutability,
		Selector:        Selector(name),
		str:             "Function(" + inputs.String() + ") -> (" + strings.Join(outs, ",") + ")",
	}
}

// String returns the canonical signature, e.g. Function(a:U32,b:U32) -> (U64).
// Functions with identical parameter names and types share a signature.
func (f *Function) String() string {
	return f.str
}

// DecodedFunction is the result of decoding a function call.
type DecodedFunction struct {
	ABIName string
	Name    string
	Inputs  Values
	Outputs []any // nil when no result was decoded
}

func (f *Function) wrap(err error) error {
	return &DispatchError{Kind: "function", Name: f.Name, Err: err}
}

// Decode decodes the call's calldata. All of calldata must be consumed.
// Decode 解码调用的 calldata。calldata 必须被完全消耗。
func (f *Function) Decode(calldata []*felt.Felt) (*DecodedFunction, error) {
	inputs, err := DecodeFromParams(f.Inputs, calldata)
	if err != nil {
		return nil, f.wrap(err)
	}
	return &DecodedFunction{ABIName: f.ABIName, Name: f.Name, Inputs: inputs}, nil
}

// DecodeWithResult decodes both the calldata and the returned values.
func (f *Function) DecodeWithResult(calldata, result []*felt.Felt) (*DecodedFunction, error) {
	decoded, err := f.Decode(calldata)
	if err != nil {
		return nil, err
	}
	if decoded.Outputs, err = f.DecodeOutputs(result); err != nil {
		return nil, err
	}
	return decoded, nil
}

// DecodeOutputs decodes the values returned by the function.
func (f *Function) DecodeOutputs(result []*felt.Felt) ([]any, error) {
	outputs, err := DecodeFromTypes(f.Outputs, result)
	if err != nil {
		return nil, f.wrap(err)
	}
	return outputs, nil
}

// Encode encodes named inputs, given as Values or map[string]any, into calldata.
// Encode 将命名输入（Values 或 map[string]any）编码为 calldata。
func (f *Function) Encode(values any) ([]*felt.Felt, error) {
	calldata, err := EncodeFromParams(f.Inputs, values)
	if err != nil {
		return nil, f.wrap(err)
	}
	return calldata, nil
}

// Pack encodes positional inputs into calldata.
func (f *Function) Pack(args ...any) ([]*felt.Felt, error) {
	calldata, err := f.Inputs.Pack(args...)
	if err != nil {
		return nil, f.wrap(err)
	}
	return calldata, nil
}
