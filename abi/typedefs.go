// Copyright 2024 The go-ethereum Authors
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

// 版权所有 2024 The go-ethereum Authors
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
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/log"
)

// isBuiltinTypeDef reports whether a struct or enum definition describes a
// type the parser already knows natively (arrays, integers, bool, options,
// NonZero, the account Call and the legacy Uint256).
// isBuiltinTypeDef 判断结构体或枚举定义是否描述了解析器已经原生支持的类型。
func isBuiltinTypeDef(name string) bool {
	switch name {
	case "Uint256", "core::starknet::account::Call":
		return true
	}
	parts := strings.Split(name, "::")
	if len(parts) < 2 || (parts[0] != "core" && parts[0] != "@core") {
		return false
	}
	switch parts[1] {
	case "array", "integer", "bool", "option", "zeroable":
		return true
	}
	return false
}

// resolveTypeDefs builds every user defined struct and enum. Definitions are
// first resolved in declaration order, which works for the vast majority of
// compiler output. If that fails, the definitions are sorted leaves-first
// over their dependency graph and resolved again. Both paths produce the
// same types.
// resolveTypeDefs 构建所有用户定义的结构体和枚举。首先按声明顺序解析；若失败，
// 则按依赖图从叶子开始排序后再次解析。两条路径产生相同的类型。
func resolveTypeDefs(defs []abiEntry) (map[string]*Type, error) {
	var (
		byName = make(map[string]abiEntry, len(defs))
		order  = make([]string, 0, len(defs))
	)
	for _, def := range defs {
		if def.Name == "" {
			return nil, &InvalidSchemaError{Entry: def.Type, Reason: "missing name"}
		}
		if isBuiltinTypeDef(def.Name) {
			continue
		}
		if prev, ok := byName[def.Name]; ok {
			if !reflect.DeepEqual(prev, def) {
				return nil, &InvalidSchemaError{Entry: def.Name, Reason: "conflicting definitions"}
			}
			continue
		}
		byName[def.Name] = def
		order = append(order, def.Name)
	}
	types, err := resolveInOrder(order, byName)
	if err == nil {
		return types, nil
	}
	sorted, sortErr := sortTypeDefs(order, byName)
	if sortErr != nil {
		return nil, sortErr
	}
	log.Warn("ABI struct and enum definitions out of order, resolving topologically", "types", len(sorted), "err", err)
	return resolveInOrder(sorted, byName)
}

func resolveInOrder(order []string, byName map[string]abiEntry) (map[string]*Type, error) {
	types := make(map[string]*Type, len(order))
	lookup := func(name string) (*Type, error) {
		if t, ok := types[name]; ok {
			return t, nil
		}
		return nil, &InvalidSchemaError{Reason: fmt.Sprintf("undefined type %q", name)}
	}
	for _, name := range order {
		t, err := buildTypeDef(byName[name], lookup)
		if err != nil {
			return nil, newSchemaError(name, err)
		}
		types[name] = t
	}
	return types, nil
}

// buildTypeDef constructs one struct or enum from its raw definition.
func buildTypeDef(def abiEntry, lookup TypeLookup) (*Type, error) {
	switch def.Type {
	case "struct":
		if def.Members == nil {
			return nil, fmt.Errorf("struct without members")
		}
		var (
			names = make([]string, len(def.Members))
			elems = make([]*Type, len(def.Members))
		)
		for i, m := range def.Members {
			if m.Name == "" || m.Type == "" {
				return nil, fmt.Errorf("member %d missing name or type", i)
			}
			t, err := NewType(m.Type, lookup)
			if err != nil {
				return nil, fmt.Errorf("member %s: %w", m.Name, err)
			}
			names[i], elems[i] = m.Name, t
		}
		return NewStructType(def.Name, names, elems), nil

	case "enum":
		if def.Variants == nil {
			return nil, fmt.Errorf("enum without variants")
		}
		variants := make([]Variant, len(def.Variants))
		for i, v := range def.Variants {
			if v.Name == "" || v.Type == "" {
				return nil, fmt.Errorf("variant %d missing name or type", i)
			}
			variants[i].Name = v.Name
			if isUnitType(v.Type) {
				continue
			}
			t, err := NewType(v.Type, lookup)
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", v.Name, err)
			}
			variants[i].Type = t
		}
		return NewEnumType(def.Name, variants), nil
	}
	return nil, fmt.Errorf("unknown type definition kind %q", def.Type)
}

// isUnitType reports whether a variant type string declares no payload.
func isUnitType(s string) bool {
	return strings.ReplaceAll(s, " ", "") == "()"
}

// typeDefRefs returns the distinct user defined names referenced by def, in
// order of first appearance.
func typeDefRefs(def abiEntry) ([]string, error) {
	var (
		refs []string
		seen = make(map[string]bool)
	)
	record := func(name string) (*Type, error) {
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
		return &Type{T: StructTy, Name: name, stringKind: name}, nil
	}
	members := def.Members
	if def.Type == "enum" {
		members = def.Variants
	}
	for _, m := range members {
		if isUnitType(m.Type) {
			continue
		}
		if _, err := NewType(m.Type, record); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

// sortTypeDefs orders definitions so every type follows the types it
// references. Undefined references and cycles are reported with the offending
// definition; a cycle lists its full path.
// sortTypeDefs 对定义进行排序，使每个类型都位于其引用的类型之后。未定义的引用和循环依赖会连同出错的定义一起报告。
func sortTypeDefs(order []string, byName map[string]abiEntry) ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	var (
		state  = make(map[string]int, len(order))
		sorted = make([]string, 0, len(order))
		stack  []string
		visit  func(name string) error
	)
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, n := range stack {
				if n == name {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, stack[start:]...), name)
			return &InvalidSchemaError{Entry: name, Reason: "cyclic type dependency: " + strings.Join(cycle, " -> ")}
		}
		state[name] = visiting
		stack = append(stack, name)

		refs, err := typeDefRefs(byName[name])
		if err != nil {
			return newSchemaError(name, err)
		}
		for _, ref := range refs {
			if _, ok := byName[ref]; !ok {
				return &InvalidSchemaError{Entry: name, Reason: fmt.Sprintf("undefined type %q", ref)}
			}
			if err := visit(ref); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		sorted = append(sorted, name)
		return nil
	}
	for _, name := range order {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
