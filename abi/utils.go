// Copyright 2022 The go-ethereum Authors
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

// 版权所有 2022 The go-ethereum Authors
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
	"golang.org/x/crypto/sha3"
)

// ResolveNameConflict returns the next available name for a given thing.
// Events declared in different modules share their last path segment, e.g.
// "erc20::Transfer" and "erc721::Transfer"; the second one is resolved to
// "Transfer0".
//
// Name conflicts are mostly resolved by adding number suffix. e.g. if the abi contains
// events "Transfer" and "Transfer0", ResolveNameConflict would return "Transfer1" for input "Transfer".
// ResolveNameConflict 为给定事物返回下一个可用的名称。
// 名称冲突主要通过添加数字后缀来解决。
func ResolveNameConflict(rawName string, used func(string) bool) string {
	name := rawName
	ok := used(name)
	for idx := 0; ok; idx++ {
		name = fmt.Sprintf("%s%d", rawName, idx)
		ok = used(name)
	}
	return name
}

// selectorBits is the width of a Starknet selector.
const selectorBits = 250

// StarknetKeccak returns keccak256(data) truncated to 250 bits, the hash
// Starknet uses for function and event selectors.
// StarknetKeccak 返回截断到 250 位的 keccak256(data)，Starknet 用它计算函数和事件选择器。
func StarknetKeccak(data []byte) *felt.Felt {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	digest := hasher.Sum(nil)
	digest[0] &= 0xff >> (256 - selectorBits)
	f, err := felt.FromBytes(digest)
	if err != nil {
		// 250 bits always fit in the field
		panic(err)
	}
	return f
}

// Selector returns the selector of an entry point or event name.
func Selector(name string) *felt.Felt {
	return StarknetKeccak([]byte(name))
}

// ShortName returns the last path segment of a fully qualified Cairo name.
func ShortName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	return name
}

var errUnbalanced = errors.New("unbalanced brackets")

// matchingClose returns the index of the bracket closing the one at s[open].
// Angle brackets and parentheses nest freely but must pair up.
func matchingClose(s string, open int) (int, error) {
	var stack []byte
	for i := open; i < len(s); i++ {
		switch c := s[i]; c {
		case '<', '(':
			stack = append(stack, c)
		case '>', ')':
			if len(stack) == 0 {
				return 0, fmt.Errorf("%w in %q", errUnbalanced, s)
			}
			top := stack[len(stack)-1]
			if (top == '<') != (c == '>') {
				return 0, fmt.Errorf("%w in %q", errUnbalanced, s)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w in %q", errUnbalanced, s)
}

// genericArgument returns the text between the angle bracket at s[open] and
// its partner, which must terminate s.
func genericArgument(s string, open int) (string, error) {
	end, err := matchingClose(s, open)
	if err != nil {
		return "", err
	}
	if end != len(s)-1 {
		return "", fmt.Errorf("unexpected trailing characters in %q", s)
	}
	return s[open+1 : end], nil
}

// splitTopLevel splits s on commas that are not nested inside angle brackets
// or parentheses. Parts are trimmed.
func splitTopLevel(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w in %q", errUnbalanced, s)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w in %q", errUnbalanced, s)
	}
	return append(parts, strings.TrimSpace(s[start:])), nil
}

// splitMemberName splits a named tuple member "name: T". Path separators are
// not mistaken for the name separator.
func splitMemberName(s string) (name, typ string) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ':':
			if depth != 0 {
				continue
			}
			if i+1 < len(s) && s[i+1] == ':' {
				i++
				continue
			}
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
		}
	}
	return "", s
}

// isTypePath reports whether s is a plain, possibly path qualified identifier.
func isTypePath(s string) bool {
	for _, seg := range strings.Split(s, "::") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
				return false
			}
		}
	}
	return true
}
