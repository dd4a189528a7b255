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
	"errors"
	"fmt"
)

// Error kinds. Every typed error below matches exactly one of these through
// errors.Is.
// 错误类别。下面的每个类型化错误都通过 errors.Is 恰好匹配其中之一。
var (
	ErrInvalidSchema = errors.New("abi: invalid schema")
	ErrTypeDecode    = errors.New("abi: type decode failed")
	ErrTypeEncode    = errors.New("abi: type encode failed")
	ErrCalldataArity = errors.New("abi: calldata arity mismatch")
)

// InvalidSchemaError is returned when an ABI cannot be turned into a resolved
// schema: malformed entries, undefined or conflicting types, cycles.
// InvalidSchemaError 在 ABI 无法转换为已解析的模式时返回。
type InvalidSchemaError struct {
	Entry  string // name or path of the offending entry
	Reason string
	Err    error
}

func newSchemaError(entry string, err error) error {
	var schemaErr *InvalidSchemaError
	if errors.As(err, &schemaErr) {
		if schemaErr.Entry == "" {
			schemaErr.Entry = entry
		}
		return schemaErr
	}
	return &InvalidSchemaError{Entry: entry, Reason: err.Error(), Err: err}
}

func (e *InvalidSchemaError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("abi: invalid schema: %s", e.Reason)
	}
	return fmt.Sprintf("abi: invalid schema entry %q: %s", e.Entry, e.Reason)
}

func (e *InvalidSchemaError) Unwrap() error { return e.Err }

func (e *InvalidSchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// TypeDecodeError reports calldata that does not satisfy a declared type.
// TypeDecodeError 表示 calldata 不满足声明的类型。
type TypeDecodeError struct {
	Type   string // canonical signature of the type being decoded
	Path   string // field / variant path, e.g. calls[1].selector
	Offset int    // cursor position at the failure
	Reason string
}

func (e *TypeDecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("abi: cannot decode %s at offset %d: %s", e.Type, e.Offset, e.Reason)
	}
	return fmt.Sprintf("abi: cannot decode %s at %s (offset %d): %s", e.Type, e.Path, e.Offset, e.Reason)
}

func (e *TypeDecodeError) Is(target error) bool { return target == ErrTypeDecode }

// TypeEncodeError reports a value that does not satisfy a declared type.
// TypeEncodeError 表示某个值不满足声明的类型。
type TypeEncodeError struct {
	Type   string
	Path   string
	Value  any
	Bound  string // declared bound, empty for shape errors
	Reason string
}

func (e *TypeEncodeError) Error() string {
	msg := fmt.Sprintf("abi: cannot encode %v (%T) as %s", e.Value, e.Value, e.Type)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	msg += ": " + e.Reason
	if e.Bound != "" {
		msg += " (bound " + e.Bound + ")"
	}
	return msg
}

func (e *TypeEncodeError) Is(target error) bool { return target == ErrTypeEncode }

// CalldataArityError reports a count mismatch between a signature and the
// supplied calldata or values.
type CalldataArityError struct {
	What string
	Want int
	Got  int
}

func (e *CalldataArityError) Error() string {
	return fmt.Sprintf("abi: %s: expected %d, got %d", e.What, e.Want, e.Got)
}

func (e *CalldataArityError) Is(target error) bool { return target == ErrCalldataArity }

// DispatchError attaches the owning function or event to a lower level error.
// DispatchError 为底层错误附加所属的函数或事件名称。
type DispatchError struct {
	Kind string // "function", "event" or "constructor"
	Name string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("abi: %s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
