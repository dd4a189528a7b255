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

package abigen

// tmplData is the data structure required to fill the binding template.
// tmplData 是填充绑定模板所需的数据结构。
type tmplData struct {
	Package   string          // Name of the package to place the generated file in // 生成文件所在的包名
	Contracts []*tmplContract // List of contracts to generate into this file // 要生成到此文件中的合约列表
	Structs   []*tmplStruct   // Cairo structs shared by all contracts // 所有合约共享的 Cairo 结构体
	Enums     []*tmplEnum     // Cairo enums shared by all contracts // 所有合约共享的 Cairo 枚举
}

// tmplContract contains the data needed to generate an individual contract binding.
// tmplContract 包含生成单个合约绑定所需的数据。
type tmplContract struct {
	Type      string       // Type name of the main contract binding // 主合约绑定的类型名
	Name      string       // Contract name as given to the generator // 传给生成器的合约名
	InputABI  string       // Quoted JSON ABI used as the input to generate the binding from // 用于生成绑定的带引号 JSON ABI
	Functions []*tmplEntry // Entry points, l1 handlers and the constructor // 入口点、L1 处理器和构造函数
	Events    []*tmplEntry // Events the contract emits // 合约发出的事件
}

// tmplEntry is a function or event selector to bind.
type tmplEntry struct {
	Name      string // Go identifier suffix // Go 标识符后缀
	Original  string // Name in the ABI // ABI 中的名称
	Signature string // Canonical signature // 规范签名
	Selector  string // Zero padded selector hex // 补零的选择器十六进制
}

// tmplField is a wrapper around a struct field with binding language
// struct type definition and relative filed name.
// tmplField 是结构体字段的包装器，包含绑定语言中的结构体类型定义和相关字段名。
type tmplField struct {
	Type  string // Field type representation depends on target binding language // 字段类型表示
	Name  string // Field name converted from the raw user-defined field name // 从原始字段名转换而来的字段名
	Cairo string // Raw member name // 原始成员名
	Kind  string // Canonical signature of the member type // 成员类型的规范签名
}

// tmplStruct is a wrapper around an abi tuple and contains an auto-generated
// struct name.
// tmplStruct 是 Cairo 结构体的包装器，包含自动生成的结构体名称。
type tmplStruct struct {
	Name   string       // Go struct name derived from the last path segment // 由最后一段路径得出的 Go 结构体名
	Cairo  string       // Full Cairo path of the struct // 结构体的完整 Cairo 路径
	Fields []*tmplField // Struct fields definition depends on the binding language. // 结构体字段定义
}

// tmplEnum is a Cairo enum bound to an index type.
type tmplEnum struct {
	Name     string
	Cairo    string
	Variants []*tmplVariant
}

type tmplVariant struct {
	Name    string // Go constant name // Go 常量名
	Cairo   string // Variant name // 变体名
	Index   int
	Payload string // Payload signature, empty for unit variants // 负载签名，无负载变体为空
}

func (s *tmplStruct) name() string { return s.Name }
func (e *tmplEnum) name() string   { return e.Name }

// tmplSource is the Go source template that the generated Go contract binding
// is based on.
// tmplSource 是生成的 Go 合约绑定所基于的 Go 源代码模板。
const tmplSource = `// Code generated via abigen - DO NOT EDIT.
// This file is a generated binding and any manual changes will be lost.

package {{.Package}}

import (
	"math/big"
	"strconv"

	"github.com/NethermindEth/starknet-abi/abi"
	"github.com/NethermindEth/starknet-abi/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Reference imports to suppress errors if they are not otherwise used.
var (
	_ = big.NewInt
	_ = strconv.FormatUint
	_ = abi.Parse
	_ = felt.MustFromHex
	_ = common.Address{}
	_ = uint256.NewInt
)

{{range .Structs}}
	// {{.Name}} is an auto generated low-level Go binding around the Cairo struct {{.Cairo}}.
	type {{.Name}} struct {
	{{range .Fields}}{{.Name}} {{.Type}} ` + "`cairo:\"{{.Cairo}}\"`" + ` // {{.Kind}}
	{{end}}}
{{end}}

{{range $enum := .Enums}}
	// {{.Name}} is the variant index of the Cairo enum {{.Cairo}}.
	type {{.Name}} uint64

	const (
	{{range .Variants}}{{.Name}} {{$enum.Name}} = {{.Index}}{{if .Payload}} // {{.Payload}}{{end}}
	{{end}})

	// String returns the Cairo name of the variant.
	func (v {{.Name}}) String() string {
		switch v {
		{{range .Variants}}case {{.Name}}:
			return {{printf "%q" .Cairo}}
		{{end}}}
		return "{{.Name}}(" + strconv.FormatUint(uint64(v), 10) + ")"
	}
{{end}}

{{range $contract := .Contracts}}
	// {{.Type}}ABI is the input ABI used to generate the binding from.
	const {{.Type}}ABI = {{.InputABI}}

	// Parse{{.Type}} parses the ABI of {{.Name}} for the given class hash.
	func Parse{{.Type}}(classHash *felt.Felt) (*abi.StarknetAbi, error) {
		return abi.Parse([]byte({{.Type}}ABI), classHash, {{printf "%q" .Name}})
	}

	// Entry point selectors of {{.Name}}.
	var (
	{{range .Functions}}// {{.Signature}}
	{{$contract.Type}}{{.Name}}Selector = felt.MustFromHex("{{.Selector}}")
	{{end}})

	// Event selectors of {{.Name}}.
	var (
	{{range .Events}}// {{.Original}} {{.Signature}}
	{{$contract.Type}}{{.Name}}EventSelector = felt.MustFromHex("{{.Selector}}")
	{{end}})
{{end}}
`
