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

// Package abigen generates Go bindings for the structs, enums and entry point
// selectors of Starknet contract ABIs.
// abigen 包用于为 Starknet 合约 ABI 中的结构体、枚举和入口点选择器生成 Go 语言绑定。
package abigen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/NethermindEth/starknet-abi/abi"
	"github.com/ethereum/go-ethereum/log"
)

// isKeyWord 检查一个字符串是否是 Go 语言的关键字。
func isKeyWord(arg string) bool {
	switch arg {
	case "break", "case", "chan", "const", "continue", "default", "defer", "else",
		"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
		"iota", "map", "make", "new", "package", "range", "return", "select",
		"struct", "switch", "type", "var":
		return true
	}
	return false
}

// Bind generates Go declarations for one or more contract ABIs: a struct for
// every Cairo struct, an index type with constants for every Cairo enum, and
// the selector of every entry point and event. Types declared by several ABIs
// are bound once.
// Bind 为一个或多个合约 ABI 生成 Go 声明：为每个 Cairo 结构体生成结构体，
// 为每个 Cairo 枚举生成索引类型和常量，并生成每个入口点和事件的选择器。
// 多个 ABI 声明的同一类型只绑定一次。
//
// names: 合约名称列表。
// abis: JSON 格式的 ABI 字符串列表。
// pkg: 生成的 Go 文件的包名。
func Bind(names []string, abis []string, pkg string) (string, error) {
	if pkg == "" || isKeyWord(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}
	if len(names) != len(abis) {
		return "", fmt.Errorf("%d contract names for %d ABIs", len(names), len(abis))
	}
	var (
		// contracts 是为每个请求绑定的独立合约创建的列表。
		contracts []*tmplContract

		// structs and enums are shared by all contracts, keyed by signature
		// structs 和 enums 由所有合约共享，以签名为键
		structs = make(map[string]*tmplStruct)
		enums   = make(map[string]*tmplEnum)

		// typeIdentifiers detects collisions between generated type names
		// typeIdentifiers 用于检测生成的类型名之间的冲突
		typeIdentifiers     = make(map[string]bool)
		contractIdentifiers = make(map[string]bool)
	)
	for i, name := range names {
		// Parse the actual ABI to generate the binding for
		// 解析实际的 ABI 以生成绑定
		parsed, err := abi.Parse([]byte(abis[i]), nil, name)
		if err != nil {
			return "", fmt.Errorf("contract %s: %w", name, err)
		}
		// Strip any whitespace from the JSON ABI
		// 从 JSON ABI 中删除所有空白字符
		stripped := new(bytes.Buffer)
		if err := json.Compact(stripped, []byte(abis[i])); err != nil {
			return "", err
		}
		typeName := identifier(name, "C")
		if contractIdentifiers[typeName] {
			return "", fmt.Errorf("duplicated contract identifier \"%s\"(normalized \"%s\")", name, typeName)
		}
		contractIdentifiers[typeName] = true

		// Bind the user types in name order so output is stable
		// 按名称顺序绑定用户类型，使输出稳定
		typeNames := make([]string, 0, len(parsed.Types))
		for n := range parsed.Types {
			typeNames = append(typeNames, n)
		}
		sort.Strings(typeNames)
		for _, n := range typeNames {
			bindUserType(parsed.Types[n], structs, enums, typeIdentifiers)
		}

		contract := &tmplContract{
			Type:     typeName,
			Name:     name,
			InputABI: strconv.Quote(stripped.String()),
		}
		identifiers := make(map[string]bool)
		addFunction := func(fn *abi.Function) error {
			entry := newEntry(fn.Name, fn.String(), fn.Selector.FullHex(), "M")
			if identifiers[entry.Name] {
				return fmt.Errorf("duplicated identifier \"%s\"(normalized \"%s\")", fn.Name, entry.Name)
			}
			identifiers[entry.Name] = true
			contract.Functions = append(contract.Functions, entry)
			return nil
		}
		for _, fn := range sortedFunctions(parsed.Functions) {
			if err := addFunction(fn); err != nil {
				return "", err
			}
		}
		for _, fn := range sortedFunctions(parsed.L1Handlers) {
			if err := addFunction(fn); err != nil {
				return "", err
			}
		}
		if parsed.Constructor != nil {
			if err := addFunction(parsed.Constructor); err != nil {
				return "", err
			}
		}
		eventNames := make([]string, 0, len(parsed.Events))
		for n := range parsed.Events {
			eventNames = append(eventNames, n)
		}
		sort.Strings(eventNames)
		eventIdentifiers := make(map[string]bool)
		for _, n := range eventNames {
			ev := parsed.Events[n]
			entry := newEntry(ev.Name, ev.String(), ev.Selector.FullHex(), "E")
			entry.Original = ev.RawName
			if eventIdentifiers[entry.Name] {
				return "", fmt.Errorf("duplicated identifier \"%s\"(normalized \"%s\")", ev.RawName, entry.Name)
			}
			eventIdentifiers[entry.Name] = true
			contract.Events = append(contract.Events, entry)
		}
		log.Debug("Bound contract ABI", "contract", name, "functions", len(contract.Functions), "events", len(contract.Events))
		contracts = append(contracts, contract)
	}
	// Generate the contract template data content and render it
	// 生成合约模板数据内容并进行渲染
	data := &tmplData{
		Package:   pkg,
		Contracts: contracts,
		Structs:   sortedValues(structs),
		Enums:     sortedValues(enums),
	}
	buffer := new(bytes.Buffer)
	tmpl := template.Must(template.New("").Parse(tmplSource))
	if err := tmpl.Execute(buffer, data); err != nil {
		return "", err
	}
	// Pass the code through gofmt to clean it up
	// 通过 gofmt 来清理代码
	code, err := format.Source(buffer.Bytes())
	if err != nil {
		return "", fmt.Errorf("%v\n%s", err, buffer)
	}
	return string(code), nil
}

func newEntry(name, signature, selector, prefix string) *tmplEntry {
	return &tmplEntry{
		Name:      identifier(name, prefix),
		Original:  name,
		Signature: signature,
		Selector:  selector,
	}
}

func sortedFunctions(fns map[string]*abi.Function) []*abi.Function {
	out := make([]*abi.Function, 0, len(fns))
	for _, fn := range fns {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type named interface{ name() string }

func sortedValues[T named](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name() < out[j].name() })
	return out
}

// bindUserType records a Cairo struct or enum, and every struct or enum it
// refers to, under a unique Go name.
// bindUserType 以唯一的 Go 名称记录 Cairo 结构体或枚举，以及它引用的所有结构体或枚举。
func bindUserType(kind *abi.Type, structs map[string]*tmplStruct, enums map[string]*tmplEnum, used map[string]bool) {
	switch kind.T {
	case abi.StructTy:
		id := kind.String()
		if _, exist := structs[id]; exist { // 如果已经处理过，直接返回
			return
		}
		s := &tmplStruct{Name: typeIdentifier(kind.Name, used), Cairo: kind.Name}
		structs[id] = s

		names := make(map[string]bool)
		for i, elem := range kind.TupleElems {
			bindUserType(elem, structs, enums, used)
			name := abi.ResolveNameConflict(identifier(kind.TupleRawNames[i], "F"), func(s string) bool { return names[s] })
			names[name] = true
			s.Fields = append(s.Fields, &tmplField{
				Name:  name,
				Type:  bindType(elem, structs),
				Cairo: kind.TupleRawNames[i],
				Kind:  elem.String(),
			})
		}
	case abi.EnumTy:
		id := kind.String()
		if _, exist := enums[id]; exist {
			return
		}
		e := &tmplEnum{Name: typeIdentifier(kind.Name, used), Cairo: kind.Name}
		enums[id] = e
		for i, v := range kind.Variants {
			variant := &tmplVariant{Name: e.Name + identifier(v.Name, "V"), Cairo: v.Name, Index: i}
			if v.HasPayload() {
				bindUserType(v.Type, structs, enums, used)
				variant.Payload = v.Type.String()
			}
			e.Variants = append(e.Variants, variant)
		}
	case abi.ArrayTy, abi.OptionTy, abi.NonZeroTy:
		bindUserType(kind.Elem, structs, enums, used)
	case abi.TupleTy:
		for _, elem := range kind.TupleElems {
			bindUserType(elem, structs, enums, used)
		}
	}
}

// typeIdentifier derives the Go name of a Cairo type from the last segment of
// its path.
func typeIdentifier(cairoName string, used map[string]bool) string {
	name := abi.ResolveNameConflict(identifier(abi.ShortName(cairoName), "T"), func(s string) bool { return used[s] })
	used[name] = true
	return name
}

// bindType converts Cairo types to the Go types the decoder produces for
// them. Structs map to their bound declarations; tuples have no declaration
// and stay dynamically typed.
// bindType 将 Cairo 类型转换为解码器为其生成的 Go 类型。结构体映射到其绑定的声明；
// 元组没有声明，保持动态类型。
func bindType(kind *abi.Type, structs map[string]*tmplStruct) string {
	switch kind.T {
	case abi.BoolTy:
		return "bool"
	case abi.UintTy:
		switch kind.Size {
		case 8, 16, 32, 64: // 对于 8, 16, 32, 64 位的整数，直接映射
			return fmt.Sprintf("uint%d", kind.Size)
		case 512:
			return "*big.Int"
		}
		return "*uint256.Int"
	case abi.IntTy:
		switch kind.Size {
		case 8, 16, 32, 64:
			return fmt.Sprintf("int%d", kind.Size)
		}
		return "*big.Int"
	case abi.FeltTy, abi.ContractAddressTy, abi.ClassHashTy, abi.StorageAddressTy:
		return "*felt.Felt"
	case abi.EthAddressTy:
		return "common.Address"
	case abi.Bytes31Ty:
		return "[31]byte"
	case abi.ArrayTy: // 数组类型
		return "[]" + bindType(kind.Elem, structs)
	case abi.NonZeroTy:
		return bindType(kind.Elem, structs)
	case abi.StructTy:
		return structs[kind.String()].Name
	case abi.EnumTy:
		return "abi.EnumValue"
	case abi.OptionTy:
		return "abi.OptionValue"
	default:
		return "[]any"
	}
}

// capitalise makes a camel-case string which starts with an upper case
// character, dropping underscores.
// capitalise 创建一个首字母大写的驼峰式字符串，并去掉下划线。
func capitalise(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}

// identifier turns a Cairo name into an exported Go identifier. Names that
// would start with a digit or normalize to nothing are prefixed.
// identifier 将 Cairo 名称转换为导出的 Go 标识符。以数字开头或规范化后为空的名称会添加前缀。
func identifier(name, prefix string) string {
	id := capitalise(name)
	// Name shouldn't start with a digit. It will make the generated code invalid.
	// 名称不应以数字开头。这会使生成的代码无效。
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = prefix + id
	}
	return id
}
