// Copyright 2018 The go-ethereum Authors
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

// 版权所有 2018 The go-ethereum Authors
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
	"sort"

	"github.com/NethermindEth/starknet-abi/felt"
)

// Implementation records the class a contract runs from Block onward.
// Implementation 记录合约从 Block 开始运行的合约类。
type Implementation struct {
	Block     uint64     `json:"block"`
	ClassHash *felt.Felt `json:"classHash"`
}

// ImplementationsByBlock implements sort.Interface for []Implementation based on the Block field.
// ImplementationsByBlock 基于 Block 字段为 []Implementation 实现 sort.Interface。
type ImplementationsByBlock []Implementation

func (h ImplementationsByBlock) Len() int           { return len(h) }
func (h ImplementationsByBlock) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h ImplementationsByBlock) Less(i, j int) bool { return h[i].Block < h[j].Block }

// at returns the implementation active at block. The history is assumed to
// be sorted by block.
// at 返回在 block 处生效的实现。假定历史已按区块排序。
func (h ImplementationsByBlock) at(block uint64) (Implementation, bool) {
	n := sort.Search(len(h), func(i int) bool { return h[i].Block > block })
	if n == 0 {
		return Implementation{}, false
	}
	return h[n-1], true
}

// with returns a copy of the history with impl inserted at its sorted
// position. An entry already recorded at the same block is replaced. The
// receiver is never modified, so readers may keep using it.
// with 返回插入 impl 后的历史副本。同一区块已记录的条目会被替换。接收者不会被修改。
func (h ImplementationsByBlock) with(impl Implementation) ImplementationsByBlock {
	n := sort.Search(len(h), func(i int) bool { return h[i].Block >= impl.Block })
	out := make(ImplementationsByBlock, 0, len(h)+1)
	out = append(out, h[:n]...)
	out = append(out, impl)
	if n < len(h) && h[n].Block == impl.Block {
		n++
	}
	return append(out, h[n:]...)
}

// ClassesByHash implements sort.Interface for []ClassInfo based on the class hash.
// ClassesByHash 基于类哈希为 []ClassInfo 实现 sort.Interface。
type ClassesByHash []ClassInfo

func (c ClassesByHash) Len() int           { return len(c) }
func (c ClassesByHash) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c ClassesByHash) Less(i, j int) bool { return c[i].ClassHash.Cmp(c[j].ClassHash) < 0 }
