// Copyright 2017 The go-ethereum Authors
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

// 版权所有 2017 The go-ethereum Authors
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
	"math"
	"math/big"

	"github.com/NethermindEth/starknet-abi/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// cursor is the read position over one calldata sequence. A single cursor is
// threaded through every recursive decode step of one top-level call and is
// never shared between calls.
// cursor 是一个 calldata 序列上的读取位置。一次顶层调用的所有递归解码步骤共享同一个 cursor，
// 不同调用之间从不共享。
type cursor struct {
	data []*felt.Felt
	off  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

// next reads one element, failing without advancing when calldata is exhausted.
func (c *cursor) next(t *Type) (*felt.Felt, error) {
	if c.off >= len(c.data) {
		return nil, decodeErr(t, c, "calldata exhausted, need 1 more element")
	}
	f := c.data[c.off]
	if f == nil {
		return nil, decodeErr(t, c, "nil calldata element")
	}
	c.off++
	return f, nil
}

// take reads n elements at once.
func (c *cursor) take(t *Type, n int) ([]*felt.Felt, error) {
	if c.remaining() < n {
		return nil, decodeErr(t, c, "calldata exhausted, need %d elements, have %d", n, c.remaining())
	}
	for i, f := range c.data[c.off : c.off+n] {
		if f == nil {
			return nil, decodeErr(t, c, "nil calldata element at %d", c.off+i)
		}
	}
	out := c.data[c.off : c.off+n]
	c.off += n
	return out, nil
}

type decoderFunc func(t *Type, c *cursor) (any, error)

// decoders is indexed by Type.T. It is filled in init because the composite
// decoders refer back to decode.
// decoders 以 Type.T 为索引。由于复合解码器会回调 decode，因此在 init 中填充。
var decoders [numKinds]decoderFunc

func init() {
	decoders = [numKinds]decoderFunc{
		BoolTy:            decodeBool,
		UintTy:            decodeUint,
		IntTy:             decodeInt,
		FeltTy:            decodeFelt,
		ContractAddressTy: decodeFelt,
		ClassHashTy:       decodeFelt,
		StorageAddressTy:  decodeFelt,
		EthAddressTy:      decodeEthAddress,
		Bytes31Ty:         decodeBytes31,
		ArrayTy:           decodeArray,
		TupleTy:           decodeTuple,
		StructTy:          decodeStruct,
		EnumTy:            decodeEnum,
		OptionTy:          decodeOption,
		NonZeroTy:         decodeNonZero,
	}
}

func decode(t *Type, c *cursor) (any, error) {
	return decoders[t.T](t, c)
}

// DecodeFromTypes decodes one value per type from calldata. Leftover calldata
// is an arity error.
// DecodeFromTypes 从 calldata 中为每个类型解码一个值。剩余的 calldata 视为数量错误。
func DecodeFromTypes(types []*Type, calldata []*felt.Felt) ([]any, error) {
	values, consumed, err := DecodePrefix(types, calldata)
	if err != nil {
		return nil, err
	}
	if consumed != len(calldata) {
		return nil, &CalldataArityError{What: "calldata length", Want: consumed, Got: len(calldata)}
	}
	return values, nil
}

// DecodePrefix decodes one value per type from the front of calldata and
// reports how many elements were consumed.
func DecodePrefix(types []*Type, calldata []*felt.Felt) ([]any, int, error) {
	c := &cursor{data: calldata}
	values := make([]any, len(types))
	for i, t := range types {
		v, err := decode(t, c)
		if err != nil {
			return nil, 0, withPath(err, indexSeg(i))
		}
		values[i] = v
	}
	return values, c.off, nil
}

// DecodeFromParams decodes calldata into named values. Leftover calldata is an
// arity error.
// DecodeFromParams 将 calldata 解码为命名值。剩余的 calldata 视为数量错误。
func DecodeFromParams(args Arguments, calldata []*felt.Felt) (Values, error) {
	c := &cursor{data: calldata}
	values, err := decodeParams(args, c)
	if err != nil {
		return nil, err
	}
	if c.remaining() != 0 {
		return nil, &CalldataArityError{What: "calldata length", Want: c.off, Got: len(calldata)}
	}
	return values, nil
}

func decodeParams(args Arguments, c *cursor) (Values, error) {
	values := make(Values, len(args))
	for i, arg := range args {
		v, err := decode(arg.Type, c)
		if err != nil {
			return nil, withPath(err, arg.Name)
		}
		values[i] = NamedValue{Name: arg.Name, Value: v}
	}
	return values, nil
}

// fitsBits reports whether f < 2^bits.
func fitsBits(f *felt.Felt, bits int) bool {
	return f.BigInt().BitLen() <= bits
}

// decodeBool reads a bool.
// decodeBool 读取一个布尔值，只接受 0 或 1。
func decodeBool(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	switch {
	case f.IsZero():
		return false, nil
	case f.IsUint64() && f.Uint64() == 1:
		return true, nil
	}
	c.off--
	return nil, decodeErr(t, c, "boolean must be 0 or 1, got %v", f)
}

// decodeUint reads an unsigned integer. u256 is stored as [low, high] and u512
// as four 128 bit limbs, least significant first.
// decodeUint 读取无符号整数。u256 存储为 [low, high]，u512 存储为四个 128 位分量，低位在前。
func decodeUint(t *Type, c *cursor) (any, error) {
	switch t.Size {
	case 256:
		limbs, err := c.take(t, 2)
		if err != nil {
			return nil, err
		}
		if err := checkLimbs(t, c, limbs); err != nil {
			return nil, err
		}
		lo, hi := limbs[0].Bytes(), limbs[1].Bytes()
		var buf [32]byte
		copy(buf[:16], hi[16:])
		copy(buf[16:], lo[16:])
		return new(uint256.Int).SetBytes32(buf[:]), nil
	case 512:
		limbs, err := c.take(t, 4)
		if err != nil {
			return nil, err
		}
		if err := checkLimbs(t, c, limbs); err != nil {
			return nil, err
		}
		v := new(big.Int)
		for i := len(limbs) - 1; i >= 0; i-- {
			v.Lsh(v, 128)
			v.Or(v, limbs[i].BigInt())
		}
		return v, nil
	}
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	if !fitsBits(f, t.Size) {
		c.off--
		return nil, decodeErr(t, c, "value %v exceeds %d bits", f, t.Size)
	}
	switch t.Size {
	case 8:
		return uint8(f.Uint64()), nil
	case 16:
		return uint16(f.Uint64()), nil
	case 32:
		return uint32(f.Uint64()), nil
	case 64:
		return f.Uint64(), nil
	default:
		b := f.Bytes()
		return new(uint256.Int).SetBytes32(b[:]), nil
	}
}

// checkLimbs verifies every limb of a multi element integer is below 2^128.
func checkLimbs(t *Type, c *cursor, limbs []*felt.Felt) error {
	for i, limb := range limbs {
		if !fitsBits(limb, 128) {
			return &TypeDecodeError{
				Type:   t.String(),
				Offset: c.off - len(limbs) + i,
				Reason: "limb " + limb.String() + " exceeds 128 bits",
			}
		}
	}
	return nil
}

// decodeInt reads a signed integer. Negative values are stored as P - |v|.
// decodeInt 读取有符号整数。负数存储为 P - |v|。
func decodeInt(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	lo, hi := t.bounds()
	v := f.BigInt()
	if v.Cmp(hi) > 0 {
		v.Sub(v, felt.Modulus())
	}
	if v.Cmp(lo) < 0 {
		c.off--
		return nil, decodeErr(t, c, "value %v outside i%d range", f, t.Size)
	}
	switch t.Size {
	case 8:
		return int8(v.Int64()), nil
	case 16:
		return int16(v.Int64()), nil
	case 32:
		return int32(v.Int64()), nil
	case 64:
		return v.Int64(), nil
	default:
		return v, nil
	}
}

// decodeFelt reads felt252 and the felt valued address types.
func decodeFelt(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	cpy := *f
	return &cpy, nil
}

func decodeEthAddress(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	if !fitsBits(f, t.Size) {
		c.off--
		return nil, decodeErr(t, c, "value %v exceeds 160 bits", f)
	}
	b := f.Bytes()
	return common.BytesToAddress(b[:]), nil
}

func decodeBytes31(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	if !fitsBits(f, t.Size) {
		c.off--
		return nil, decodeErr(t, c, "value %v exceeds 31 bytes", f)
	}
	var out [31]byte
	b := f.Bytes()
	copy(out[:], b[1:])
	return out, nil
}

// maxZeroWidthElems caps arrays whose elements occupy no calldata.
const maxZeroWidthElems = 1 << 20

// decodeArray reads the element count and then that many elements. The count
// is checked against the remaining calldata before anything is allocated.
// decodeArray 读取元素个数，然后读取相应数量的元素。在分配任何内存之前，会先根据剩余的 calldata 检查个数。
func decodeArray(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	// Elements of zero width consume no calldata, so only a fixed cap applies.
	limit := uint64(maxZeroWidthElems)
	if w := t.Elem.width; w > 0 {
		limit = uint64(c.remaining() / w)
	}
	if !f.IsUint64() || f.Uint64() > limit || f.Uint64() > math.MaxInt32 {
		c.off--
		return nil, decodeErr(t, c, "array length %v exceeds remaining calldata (%d)", f, c.remaining()-1)
	}
	n := int(f.Uint64())
	out := make([]any, n)
	for i := 0; i < n; i++ {
		if out[i], err = decode(t.Elem, c); err != nil {
			return nil, withPath(err, indexSeg(i))
		}
	}
	return out, nil
}

// decodeTuple decodes every member in order against the shared cursor.
func decodeTuple(t *Type, c *cursor) (any, error) {
	out := make([]any, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		v, err := decode(elem, c)
		if err != nil {
			seg := indexSeg(i)
			if t.TupleRawNames != nil {
				seg = t.TupleRawNames[i]
			}
			return nil, withPath(err, seg)
		}
		out[i] = v
	}
	return out, nil
}

func decodeStruct(t *Type, c *cursor) (any, error) {
	out := make(Values, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		v, err := decode(elem, c)
		if err != nil {
			return nil, withPath(err, t.TupleRawNames[i])
		}
		out[i] = NamedValue{Name: t.TupleRawNames[i], Value: v}
	}
	return out, nil
}

// decodeEnum reads the variant index and, when the variant declares one, its
// payload.
// decodeEnum 读取变体索引，如果该变体声明了负载，则继续读取负载。
func decodeEnum(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	if !f.IsUint64() || f.Uint64() >= uint64(len(t.Variants)) {
		c.off--
		return nil, decodeErr(t, c, "variant index %v out of range (%d variants)", f, len(t.Variants))
	}
	variant := t.Variants[f.Uint64()]
	if !variant.HasPayload() {
		return EnumValue{Variant: variant.Name}, nil
	}
	v, err := decode(variant.Type, c)
	if err != nil {
		return nil, withPath(err, variant.Name)
	}
	return EnumValue{Variant: variant.Name, Value: v}, nil
}

// decodeOption reads 0 for an absent value or 1 followed by the inner value.
func decodeOption(t *Type, c *cursor) (any, error) {
	f, err := c.next(t)
	if err != nil {
		return nil, err
	}
	switch {
	case f.IsZero():
		return None, nil
	case f.IsUint64() && f.Uint64() == 1:
		v, err := decode(t.Elem, c)
		if err != nil {
			return nil, withPath(err, "Some")
		}
		return Some(v), nil
	}
	c.off--
	return nil, decodeErr(t, c, "option index must be 0 or 1, got %v", f)
}

// decodeNonZero decodes the inner value and rejects an all zero encoding.
func decodeNonZero(t *Type, c *cursor) (any, error) {
	start := c.off
	v, err := decode(t.Elem, c)
	if err != nil {
		return nil, err
	}
	for _, f := range c.data[start:c.off] {
		if !f.IsZero() {
			return v, nil
		}
	}
	c.off = start
	return nil, decodeErr(t, c, "zero value")
}
