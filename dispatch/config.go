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

package dispatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// Config holds the dispatcher settings.
// Config 保存调度器的设置。
type Config struct {
	// StrictCalldata rejects calldata left over after the inputs of a call are
	// decoded. When false, trailing elements are ignored.
	// StrictCalldata 拒绝调用输入解码后剩余的 calldata。为 false 时忽略多余的元素。
	StrictCalldata bool

	// LazyLoad fetches unknown classes from the ABI source on first use.
	// LazyLoad 在首次使用时从 ABI 数据源获取未知的合约类。
	LazyLoad bool

	// MaxClasses bounds the number of registered classes. The oldest
	// registration is evicted first. Zero means unbounded.
	// MaxClasses 限制已注册合约类的数量，最早注册的先被驱逐。0 表示不限制。
	MaxClasses int
}

// DefaultConfig contains the default dispatcher settings.
// DefaultConfig 包含调度器的默认设置。
var DefaultConfig = Config{
	StrictCalldata: true,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
// 这些设置确保 TOML 键使用与 Go 结构体字段相同的名称。
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Validate checks the settings for values the dispatcher cannot honour.
func (c *Config) Validate() error {
	if c.MaxClasses < 0 {
		return fmt.Errorf("invalid MaxClasses %d", c.MaxClasses)
	}
	return nil
}

// DecodeConfig reads TOML settings from r over cfg. Keys missing from the
// input keep their current value.
// DecodeConfig 从 r 中读取 TOML 设置并覆盖 cfg。输入中缺失的键保留其当前值。
func DecodeConfig(r io.Reader, cfg *Config) error {
	if err := tomlSettings.NewDecoder(r).Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// LoadConfig reads TOML settings from file over cfg.
// LoadConfig 从文件中读取 TOML 设置并覆盖 cfg。
func LoadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = DecodeConfig(bufio.NewReader(f), cfg)
	// Add file name to errors that have a line number.
	// 将文件名添加到具有行号的错误中。
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// EncodeConfig renders cfg as TOML.
func EncodeConfig(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}
