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
	"encoding/json"
	"math/big"
	"reflect"

	"github.com/NethermindEth/starknet-abi/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var mask128 = new(big.Int).Sub(new(big.Int).Lsh(common.Big1, 128), common.Big1)

type encoderFunc func(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error)

// encoders is indexed by Type.T, mirroring decoders.
// encoders 以 Type.T 为索引，与 decoders 对应。
var encoders [numKinds]encoderFunc

func init() {
	encoders = [numKinds]encoderFunc{
		BoolTy:            encodeBool,
		UintTy:            encodeUint,
		IntTy:             encodeInt,
		FeltTy:            encodeFelt,
		ContractAddressTy: encodeFelt,
		ClassHashTy:       encodeFelt,
		StorageAddressTy:  encodeFelt,
		EthAddressTy:      encodeEthAddress,
		Bytes31Ty:         encodeBytes31,
		ArrayTy:           encodeArray,
		TupleTy:           encodeTuple,
		StructTy:          encodeStruct,
		EnumTy:            encodeEnum,
		OptionTy:          encodeOption,
		NonZeroTy:         encodeNonZero,
	}
}

func encode(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	return encoders[t.T](t, v, out)
}

// EncodeFromTypes encodes one value per type into a flat calldata sequence.
// EncodeFromTypes 将每个类型对应的一个值编码为扁平的 calldata 序列。
func EncodeFromTypes(types []*Type, values []any) ([]*felt.Felt, error) {
	if len(types) != len(values) {
		return nil, &CalldataArityError{What: "value count", Want: len(types), Got: len(values)}
	}
	var (
		out []*felt.Felt
		err error
	)
	for i, t := range types {
		if out, err = encode(t, values[i], out); err != nil {
			return nil, withPath(err, indexSeg(i))
		}
	}
	return out, nil
}

// EncodeFromParams encodes named values. values may be Values or a
// map[string]any and must hold exactly one entry per argument.
// EncodeFromParams 编码命名值。values 可以是 Values 或 map[string]any，且每个参数必须恰好有一个值。
func EncodeFromParams(args Arguments, values any) ([]*felt.Felt, error) {
	lookup, count, ok := namedLookup(values)
	if !ok {
		return nil, &TypeEncodeError{Type: "(" + args.String() + ")", Value: values, Reason: "expected Values or map[string]any"}
	}
	if count != len(args) {
		return nil, &CalldataArityError{What: "argument count", Want: len(args), Got: count}
	}
	var (
		out []*felt.Felt
		err error
	)
	for _, arg := range args {
		v, ok := lookup(arg.Name)
		if !ok {
			return nil, &TypeEncodeError{Type: arg.Type.String(), Path: arg.Name, Reason: "missing argument"}
		}
		if out, err = encode(arg.Type, v, out); err != nil {
			return nil, withPath(err, arg.Name)
		}
	}
	return out, nil
}

// namedLookup adapts the accepted struct and parameter value shapes.
func namedLookup(values any) (func(string) (any, bool), int, bool) {
	switch vs := values.(type) {
	case Values:
		return vs.Get, len(vs), true
	case map[string]any:
		return func(name string) (any, bool) {
			v, ok := vs[name]
			return v, ok
		}, len(vs), true
	case nil:
		return func(string) (any, bool) { return nil, false }, 0, true
	}
	return nil, 0, false
}

// toBig converts the accepted integer representations into a big.Int. It
// returns false for anything that is not integer shaped.
// toBig 将可接受的整数表示转换为 big.Int。对于非整数形式的值返回 false。
func toBig(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, false
		}
		return new(big.Int).Set(x), true
	case big.Int:
		return new(big.Int).Set(&x), true
	case *uint256.Int:
		if x == nil {
			return nil, false
		}
		return x.ToBig(), true
	case uint256.Int:
		return x.ToBig(), true
	case *felt.Felt:
		if x == nil {
			return nil, false
		}
		return x.BigInt(), true
	case felt.Felt:
		return x.BigInt(), true
	case []byte:
		return new(big.Int).SetBytes(x), true
	case json.Number:
		return new(big.Int).SetString(string(x), 10)
	case string:
		return new(big.Int).SetString(x, 0)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true
	}
	return nil, false
}

// fromBig converts a value already checked against the field into a felt.
func fromBig(t *Type, v *big.Int, orig any) (*felt.Felt, error) {
	f, err := felt.FromBig(v)
	if err != nil {
		return nil, typeErr(t, orig, "%v", err)
	}
	return f, nil
}

// checkedBig converts v and checks it against the bounds of t.
func checkedBig(t *Type, v any) (*big.Int, error) {
	b, ok := toBig(v)
	if !ok {
		return nil, typeErr(t, v, "not an integer")
	}
	lo, hi := t.bounds()
	if b.Cmp(lo) < 0 || b.Cmp(hi) > 0 {
		return nil, boundErr(t, v, lo, hi)
	}
	return b, nil
}

func encodeBool(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, typeErr(t, v, "expected bool")
	}
	if b {
		return append(out, felt.FromUint64(1)), nil
	}
	return append(out, felt.FromUint64(0)), nil
}

// encodeUint writes an unsigned integer, splitting u256 into [low, high] and
// u512 into four 128 bit limbs.
// encodeUint 写入无符号整数，u256 拆分为 [low, high]，u512 拆分为四个 128 位分量。
func encodeUint(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	b, err := checkedBig(t, v)
	if err != nil {
		return nil, err
	}
	limbs := t.width
	for i := 0; i < limbs; i++ {
		limb := b
		if limbs > 1 {
			limb = new(big.Int).And(b, mask128)
			b = new(big.Int).Rsh(b, 128)
		}
		f, err := fromBig(t, limb, v)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// encodeInt writes a signed integer, negatives as P - |v|.
func encodeInt(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	b, err := checkedBig(t, v)
	if err != nil {
		return nil, err
	}
	if b.Sign() < 0 {
		b.Add(b, felt.Modulus())
	}
	f, err := fromBig(t, b, v)
	if err != nil {
		return nil, err
	}
	return append(out, f), nil
}

// encodeFelt writes a single felt. Felt inputs are copied as is only for the
// types bounded by the field itself; narrower types go through the range check.
// encodeFelt 写入单个 felt。只有以域本身为上界的类型才会直接复制 felt 输入；更窄的类型需要经过范围检查。
func encodeFelt(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	if f, ok := v.(*felt.Felt); ok && f != nil && t.fieldBounded() {
		cpy := *f
		return append(out, &cpy), nil
	}
	b, err := checkedBig(t, v)
	if err != nil {
		return nil, err
	}
	f, err := fromBig(t, b, v)
	if err != nil {
		return nil, err
	}
	return append(out, f), nil
}

// fieldBounded reports whether every felt is a valid value of t.
func (t *Type) fieldBounded() bool {
	switch t.T {
	case FeltTy, ContractAddressTy, ClassHashTy, StorageAddressTy:
		return true
	}
	return false
}

func encodeEthAddress(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	switch addr := v.(type) {
	case common.Address:
		v = addr.Bytes()
	case *common.Address:
		if addr != nil {
			v = addr.Bytes()
		}
	}
	return encodeFelt(t, v, out)
}

func encodeBytes31(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	switch b := v.(type) {
	case [31]byte:
		v = b[:]
	case []byte:
		if len(b) > 31 {
			return nil, typeErr(t, v, "%d bytes do not fit in bytes31", len(b))
		}
	}
	return encodeFelt(t, v, out)
}

// encodeArray writes the element count followed by every element.
// encodeArray 先写入元素个数，然后依次写入每个元素。
func encodeArray(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeErr(t, v, "expected slice or array")
	}
	out = append(out, felt.FromUint64(uint64(rv.Len())))
	var err error
	for i := 0; i < rv.Len(); i++ {
		if out, err = encode(t.Elem, rv.Index(i).Interface(), out); err != nil {
			return nil, withPath(err, indexSeg(i))
		}
	}
	return out, nil
}

func encodeTuple(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeErr(t, v, "expected slice or array")
	}
	if rv.Len() != len(t.TupleElems) {
		return nil, typeErr(t, v, "expected %d members, got %d", len(t.TupleElems), rv.Len())
	}
	var err error
	for i, elem := range t.TupleElems {
		if out, err = encode(elem, rv.Index(i).Interface(), out); err != nil {
			seg := indexSeg(i)
			if t.TupleRawNames != nil {
				seg = t.TupleRawNames[i]
			}
			return nil, withPath(err, seg)
		}
	}
	return out, nil
}

// encodeStruct writes every member in declared order. Missing or unknown
// member names are rejected.
// encodeStruct 按声明顺序写入每个成员。缺失或未知的成员名会被拒绝。
func encodeStruct(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	lookup, count, ok := namedLookup(v)
	if !ok || v == nil {
		return nil, typeErr(t, v, "expected Values or map[string]any")
	}
	if count != len(t.TupleElems) {
		return nil, typeErr(t, v, "expected %d members, got %d", len(t.TupleElems), count)
	}
	var err error
	for i, elem := range t.TupleElems {
		name := t.TupleRawNames[i]
		member, ok := lookup(name)
		if !ok {
			return nil, typeErr(t, v, "missing member %q", name)
		}
		if out, err = encode(elem, member, out); err != nil {
			return nil, withPath(err, name)
		}
	}
	return out, nil
}

// encodeEnum writes the variant index and the payload of the selected variant.
// Accepted values are EnumValue, a single entry map[string]any, or the bare
// variant name for variants without payload.
// encodeEnum 写入变体索引以及选中变体的负载。
func encodeEnum(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	var (
		name    string
		payload any
	)
	switch ev := v.(type) {
	case EnumValue:
		name, payload = ev.Variant, ev.Value
	case *EnumValue:
		if ev == nil {
			return nil, typeErr(t, v, "nil enum value")
		}
		name, payload = ev.Variant, ev.Value
	case map[string]any:
		if len(ev) != 1 {
			return nil, typeErr(t, v, "expected exactly one variant, got %d", len(ev))
		}
		for name, payload = range ev {
		}
	case string:
		name = ev
	default:
		return nil, typeErr(t, v, "expected EnumValue")
	}
	idx := t.VariantIndex(name)
	if idx < 0 {
		return nil, typeErr(t, v, "unknown variant %q", name)
	}
	out = append(out, felt.FromUint64(uint64(idx)))
	variant := t.Variants[idx]
	if !variant.HasPayload() {
		if payload != nil && payload != "" {
			return nil, typeErr(t, v, "variant %q carries no payload", name)
		}
		return out, nil
	}
	out, err := encode(variant.Type, payload, out)
	if err != nil {
		return nil, withPath(err, name)
	}
	return out, nil
}

// encodeOption writes 0 for an absent value and 1 followed by the inner value
// otherwise. nil and None are absent; any other value is present.
func encodeOption(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	switch ov := v.(type) {
	case nil:
		return append(out, felt.FromUint64(0)), nil
	case OptionValue:
		if !ov.Present {
			return append(out, felt.FromUint64(0)), nil
		}
		v = ov.Value
	case *OptionValue:
		if ov == nil || !ov.Present {
			return append(out, felt.FromUint64(0)), nil
		}
		v = ov.Value
	}
	out, err := encode(t.Elem, v, append(out, felt.FromUint64(1)))
	if err != nil {
		return nil, withPath(err, "Some")
	}
	return out, nil
}

func encodeNonZero(t *Type, v any, out []*felt.Felt) ([]*felt.Felt, error) {
	start := len(out)
	out, err := encode(t.Elem, v, out)
	if err != nil {
		return nil, err
	}
	for _, f := range out[start:] {
		if !f.IsZero() {
			return out, nil
		}
	}
	return nil, typeErr(t, v, "zero value")
}
