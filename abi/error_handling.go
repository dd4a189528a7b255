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
	"strings"
)

// joinPath prepends seg to an error path. Index segments attach without a dot.
func joinPath(seg, path string) string {
	switch {
	case seg == "":
		return path
	case path == "":
		return seg
	case strings.HasPrefix(path, "["):
		return seg + path
	default:
		return seg + "." + path
	}
}

// withPath prefixes the path of a decode or encode error with seg as it
// travels up through a container.
// withPath 在错误穿过容器向上传播时，为解码或编码错误的路径添加前缀 seg。
func withPath(err error, seg string) error {
	var (
		decErr *TypeDecodeError
		encErr *TypeEncodeError
	)
	switch {
	case errors.As(err, &decErr):
		decErr.Path = joinPath(seg, decErr.Path)
	case errors.As(err, &encErr):
		encErr.Path = joinPath(seg, encErr.Path)
	}
	return err
}

func indexSeg(i int) string {
	return fmt.Sprintf("[%d]", i)
}

// decodeErr returns a formatted decode error at the cursor position.
func decodeErr(t *Type, c *cursor, format string, args ...any) error {
	return &TypeDecodeError{Type: t.String(), Offset: c.off, Reason: fmt.Sprintf(format, args...)}
}

// typeErr returns a formatted shape error for a value that cannot be used as t.
// typeErr 返回一个格式化的类型转换错误。
func typeErr(t *Type, value any, format string, args ...any) error {
	return &TypeEncodeError{Type: t.String(), Value: value, Reason: fmt.Sprintf(format, args...)}
}

// boundErr returns an encode error naming the violated bound.
func boundErr(t *Type, value any, lo, hi fmt.Stringer) error {
	return &TypeEncodeError{
		Type:   t.String(),
		Value:  value,
		Bound:  fmt.Sprintf("[%v, %v]", lo, hi),
		Reason: "value out of range",
	}
}
