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

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	starknet "github.com/NethermindEth/starknet-abi"
	"github.com/NethermindEth/starknet-abi/abi"
	"github.com/NethermindEth/starknet-abi/felt"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// functionRef points a selector of one class at a shared function shape.
type functionRef struct {
	name      string // 在该合约类中声明的名称
	signature string
	fn        *abi.Function
}

// eventRef points a selector of one class at a shared event shape.
type eventRef struct {
	name      string
	signature string
	ev        *abi.Event
}

// classEntry is the dispatch table of one registered class. It is never
// modified once registered.
// classEntry 是一个已注册合约类的调度表，注册后不再修改。
type classEntry struct {
	info      ClassInfo
	functions map[felt.Felt]functionRef
	events    map[felt.Felt]eventRef
}

// shared is a function or event shape referenced by one or more classes.
type shared[T any] struct {
	value T
	refs  int
}

// Dispatcher decodes calls and events of many contract classes. Functions and
// events with identical canonical signatures are stored once and shared
// between the classes declaring them.
// Dispatcher 解码多个合约类的调用和事件。具有相同规范签名的函数和事件只存储一份，
// 并在声明它们的合约类之间共享。
type Dispatcher struct {
	config Config
	source starknet.ABISource

	classes   map[felt.Felt]*classEntry            // Registered classes by hash // 按哈希索引的已注册合约类
	order     []felt.Felt                          // Registration order, oldest first // 注册顺序，最早的在前
	functions map[string]*shared[*abi.Function]    // Function shapes by signature // 按签名索引的函数结构
	events    map[string]*shared[*abi.Event]       // Event shapes by signature // 按签名索引的事件结构
	contracts map[felt.Felt]ImplementationsByBlock // Class history by contract // 按合约索引的合约类历史

	feed event.Feed // Class feed notifying of arrivals/departures // 合约类到达/离开的通知源
	lock sync.RWMutex
}

// New creates a dispatcher. source may be nil, in which case only explicitly
// registered classes are decoded.
// New 创建一个调度器。source 可以为 nil，此时只解码显式注册的合约类。
func New(config *Config, source starknet.ABISource) *Dispatcher {
	cfg := DefaultConfig
	if config != nil {
		cfg = *config
	}
	return &Dispatcher{
		config:    cfg,
		source:    source,
		classes:   make(map[felt.Felt]*classEntry),
		functions: make(map[string]*shared[*abi.Function]),
		events:    make(map[string]*shared[*abi.Event]),
		contracts: make(map[felt.Felt]ImplementationsByBlock),
	}
}

// AddABI registers a parsed class. Registering a class hash again replaces the
// previous registration.
// AddABI 注册一个已解析的合约类。再次注册同一类哈希会替换之前的注册。
func (d *Dispatcher) AddABI(parsed *abi.StarknetAbi) error {
	if parsed.ClassHash == nil {
		return ErrMissingClassHash
	}
	d.lock.Lock()
	info, evicted := d.addLocked(parsed)
	d.lock.Unlock()

	// Notify any listeners of the change
	// 通知变更的任何监听器
	d.feed.Send(ClassEvent{Class: info, Kind: ClassAdded})
	for _, info := range evicted {
		log.Debug("Evicted class ABI", "class", info.ClassHash, "name", info.ABIName)
		d.feed.Send(ClassEvent{Class: info, Kind: ClassEvicted})
	}
	return nil
}

// addLocked registers parsed and evicts the oldest classes over the limit.
// Callers must hold d.lock.
// addLocked 注册 parsed，并驱逐超出上限的最早合约类。调用者必须持有 d.lock。
func (d *Dispatcher) addLocked(parsed *abi.StarknetAbi) (ClassInfo, []ClassInfo) {
	hash := *parsed.ClassHash
	if old, ok := d.classes[hash]; ok {
		d.releaseLocked(old)
		d.dropOrderLocked(hash)
	}
	entry := &classEntry{
		info:      ClassInfo{ClassHash: &hash, ABIName: parsed.Name},
		functions: make(map[felt.Felt]functionRef),
		events:    make(map[felt.Felt]eventRef),
	}
	addFunction := func(fn *abi.Function) {
		if _, ok := entry.functions[*fn.Selector]; ok {
			return
		}
		sig := fn.String()
		s, ok := d.functions[sig]
		if !ok {
			s = &shared[*abi.Function]{value: fn}
			d.functions[sig] = s
		}
		s.refs++
		entry.functions[*fn.Selector] = functionRef{name: fn.Name, signature: sig, fn: s.value}
	}
	for _, fn := range parsed.Functions {
		addFunction(fn)
	}
	for _, fn := range parsed.L1Handlers {
		addFunction(fn)
	}
	if parsed.Constructor != nil {
		addFunction(parsed.Constructor)
	}
	for _, ev := range parsed.Events {
		if _, ok := entry.events[*ev.Selector]; ok {
			continue
		}
		// events sharing a short name share a selector, keep the one the ABI resolves
		canonical, err := parsed.EventBySelector(ev.Selector)
		if err != nil {
			canonical = ev
		}
		sig := canonical.String()
		s, ok := d.events[sig]
		if !ok {
			s = &shared[*abi.Event]{value: canonical}
			d.events[sig] = s
		}
		s.refs++
		entry.events[*ev.Selector] = eventRef{name: canonical.Name, signature: sig, ev: s.value}
	}
	entry.info.Functions = len(entry.functions)
	entry.info.Events = len(entry.events)

	d.classes[hash] = entry
	d.order = append(d.order, hash)

	var evicted []ClassInfo
	for d.config.MaxClasses > 0 && len(d.order) > d.config.MaxClasses {
		oldest := d.classes[d.order[0]]
		d.order = d.order[1:]
		delete(d.classes, *oldest.info.ClassHash)
		d.releaseLocked(oldest)
		evicted = append(evicted, oldest.info)
	}
	return entry.info, evicted
}

// releaseLocked drops the shape references held by entry. Callers must hold
// d.lock.
func (d *Dispatcher) releaseLocked(entry *classEntry) {
	for _, ref := range entry.functions {
		if s := d.functions[ref.signature]; s != nil {
			if s.refs--; s.refs == 0 {
				delete(d.functions, ref.signature)
			}
		}
	}
	for _, ref := range entry.events {
		if s := d.events[ref.signature]; s != nil {
			if s.refs--; s.refs == 0 {
				delete(d.events, ref.signature)
			}
		}
	}
}

func (d *Dispatcher) dropOrderLocked(hash felt.Felt) {
	for i, h := range d.order {
		if h == hash {
			d.order = append(d.order[:i:i], d.order[i+1:]...)
			return
		}
	}
}

// AddContract records that the contract at address runs class classHash from
// block onward. The class must be registered unless lazy loading is enabled.
// AddContract 记录 address 处的合约从 block 开始运行 classHash 合约类。
// 除非启用了延迟加载，否则该合约类必须已注册。
func (d *Dispatcher) AddContract(address, classHash *felt.Felt, block uint64) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if _, ok := d.classes[*classHash]; !ok && !d.config.LazyLoad {
		return fmt.Errorf("%w %v, cannot add implementation for contract %v", ErrUnknownClass, classHash, address)
	}
	hash := *classHash
	d.contracts[*address] = d.contracts[*address].with(Implementation{Block: block, ClassHash: &hash})
	return nil
}

// ClassAt returns the class the contract at address ran at block.
// ClassAt 返回 address 处的合约在 block 时运行的合约类。
func (d *Dispatcher) ClassAt(address *felt.Felt, block uint64) (*felt.Felt, error) {
	d.lock.RLock()
	history := d.contracts[*address]
	d.lock.RUnlock()

	if len(history) == 0 {
		return nil, fmt.Errorf("%w %v", ErrUnknownContract, address)
	}
	impl, ok := history.at(block)
	if !ok {
		return nil, NewNoImplementationError(address, block, history[0].Block)
	}
	return impl.ClassHash, nil
}

// History returns the recorded class history of a contract, sorted by block.
// History 返回合约已记录的合约类历史，按区块排序。
func (d *Dispatcher) History(address *felt.Felt) (ImplementationsByBlock, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	history, ok := d.contracts[*address]
	if !ok {
		return nil, fmt.Errorf("%w %v", ErrUnknownContract, address)
	}
	cpy := make(ImplementationsByBlock, len(history))
	copy(cpy, history)
	return cpy, nil
}

// Class returns the registration info of a class.
func (d *Dispatcher) Class(classHash *felt.Felt) (ClassInfo, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	entry, ok := d.classes[*classHash]
	if !ok {
		return ClassInfo{}, false
	}
	return entry.info, true
}

// Classes returns all registered classes sorted by class hash.
// Classes 返回按类哈希排序的所有已注册合约类。
func (d *Dispatcher) Classes() []ClassInfo {
	d.lock.RLock()
	defer d.lock.RUnlock()

	infos := make([]ClassInfo, 0, len(d.classes)) // return [] instead of nil if empty // 如果为空，返回 [] 而不是 nil
	for _, entry := range d.classes {
		infos = append(infos, entry.info)
	}
	sort.Sort(ClassesByHash(infos))
	return infos
}

// Subscribe creates an async subscription to receive notifications when a
// class is registered or evicted. The sink should be buffered, sends block
// until it has room.
// Subscribe 创建异步订阅，以便在合约类被注册或驱逐时接收通知。
func (d *Dispatcher) Subscribe(sink chan<- ClassEvent) event.Subscription {
	return d.feed.Subscribe(sink)
}

// class returns the dispatch table of a class, loading it from the ABI source
// when it is unknown and lazy loading is enabled.
// class 返回合约类的调度表；当合约类未知且启用了延迟加载时，从 ABI 数据源加载。
func (d *Dispatcher) class(ctx context.Context, classHash *felt.Felt) (*classEntry, error) {
	d.lock.RLock()
	entry, ok := d.classes[*classHash]
	d.lock.RUnlock()
	if ok {
		return entry, nil
	}
	if !d.config.LazyLoad || d.source == nil {
		return nil, fmt.Errorf("%w %v", ErrUnknownClass, classHash)
	}
	raw, err := d.source.ClassABI(ctx, classHash)
	if errors.Is(err, starknet.NotFound) {
		return nil, fmt.Errorf("%w %v", ErrUnknownClass, classHash)
	}
	if err != nil {
		return nil, fmt.Errorf("loading class %v: %w", classHash, err)
	}
	var name string
	if namer, ok := d.source.(starknet.ABINamer); ok {
		name = namer.ABIName(classHash)
	}
	parsed, err := abi.Parse(raw, classHash, name)
	if err != nil {
		return nil, fmt.Errorf("loading class %v: %w", classHash, err)
	}
	log.Debug("Loaded class ABI", "class", classHash, "name", name, "functions", len(parsed.Functions), "events", len(parsed.Events))

	d.lock.Lock()
	if existing, ok := d.classes[*classHash]; ok {
		// loaded concurrently
		d.lock.Unlock()
		return existing, nil
	}
	info, evicted := d.addLocked(parsed)
	entry = d.classes[*classHash]
	d.lock.Unlock()

	d.feed.Send(ClassEvent{Class: info, Kind: ClassAdded})
	for _, info := range evicted {
		d.feed.Send(ClassEvent{Class: info, Kind: ClassEvicted})
	}
	return entry, nil
}

// preloadWorkers bounds the concurrent ABI fetches of Preload.
const preloadWorkers = 8

// Preload fetches the given classes from the ABI source concurrently, so that
// later decodes do not wait on the source. Classes already registered are
// skipped. The first failing fetch cancels the others.
// Preload 从 ABI 数据源并发获取给定的合约类，使之后的解码无需等待数据源。
// 已注册的合约类会被跳过。第一个失败的获取会取消其余的获取。
func (d *Dispatcher) Preload(ctx context.Context, classHashes ...*felt.Felt) error {
	if !d.config.LazyLoad || d.source == nil {
		return errors.New("preload requires lazy loading and an ABI source")
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadWorkers)
	for _, hash := range classHashes {
		g.Go(func() error {
			_, err := d.class(ctx, hash)
			return err
		})
	}
	return g.Wait()
}

// decodeParams decodes call inputs, honouring the strict calldata setting.
func (d *Dispatcher) decodeParams(args abi.Arguments, calldata []*felt.Felt) (abi.Values, error) {
	if d.config.StrictCalldata {
		return abi.DecodeFromParams(args, calldata)
	}
	decoded, consumed, err := abi.DecodePrefix(args.Types(), calldata)
	if err != nil {
		return nil, err
	}
	if consumed < len(calldata) {
		log.Debug("Ignoring trailing calldata", "felts", len(calldata)-consumed)
	}
	values := make(abi.Values, len(args))
	for i, arg := range args {
		values[i] = abi.NamedValue{Name: arg.Name, Value: decoded[i]}
	}
	return values, nil
}

// DecodeFunction decodes the calldata, and the result when not nil, of a call
// to selector on a contract running classHash. The account entry points
// decode without the class being known.
// DecodeFunction 解码对运行 classHash 的合约上 selector 的调用的 calldata，以及非 nil 时的返回结果。
// 账户入口点无需已知合约类即可解码。
func (d *Dispatcher) DecodeFunction(ctx context.Context, calldata, result []*felt.Felt, selector, classHash *felt.Felt) (*abi.DecodedFunction, error) {
	if selector == nil {
		return nil, fmt.Errorf("%w <nil> in class %v", ErrUnknownSelector, classHash)
	}
	var (
		fn      *abi.Function
		name    string
		abiName string
	)
	entry, err := d.class(ctx, classHash)
	if err != nil && !errors.Is(err, ErrUnknownClass) {
		return nil, err
	}
	if entry != nil {
		if ref, ok := entry.functions[*selector]; ok {
			fn, name, abiName = ref.fn, ref.name, entry.info.ABIName
		}
	}
	core := false
	if fn == nil {
		if fn, core = coreFunctions[*selector]; !core {
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w %v in class %v", ErrUnknownSelector, selector, classHash)
		}
		name = fn.Name
	}
	inputs, err := d.decodeParams(fn.Inputs, calldata)
	if err != nil {
		return nil, &abi.DispatchError{Kind: "function", Name: name, Err: err}
	}
	decoded := &abi.DecodedFunction{ABIName: abiName, Name: name, Inputs: inputs}
	if !core && result != nil {
		if decoded.Outputs, err = abi.DecodeFromTypes(fn.Outputs, result); err != nil {
			return nil, &abi.DispatchError{Kind: "function", Name: name, Err: err}
		}
	}
	return decoded, nil
}

// DecodeEvent decodes an event emitted by a contract running classHash. keys[0]
// selects the event.
// DecodeEvent 解码由运行 classHash 的合约发出的事件。keys[0] 用于选择事件。
func (d *Dispatcher) DecodeEvent(ctx context.Context, keys, data []*felt.Felt, classHash *felt.Felt) (*abi.DecodedEvent, error) {
	entry, err := d.class(ctx, classHash)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 || keys[0] == nil {
		return nil, &abi.DispatchError{Kind: "event", Err: &abi.CalldataArityError{What: "event keys", Want: 1, Got: 0}}
	}
	ref, ok := entry.events[*keys[0]]
	if !ok {
		return nil, fmt.Errorf("%w %v in class %v", ErrUnknownSelector, keys[0], classHash)
	}
	decoded, err := ref.ev.DecodeBody(keys[1:], data)
	if err != nil {
		// The shared shape carries the name of its first registrant.
		var de *abi.DispatchError
		if errors.As(err, &de) {
			err = de.Err
		}
		return nil, &abi.DispatchError{Kind: "event", Name: ref.name, Err: err}
	}
	decoded.ABIName, decoded.Name = entry.info.ABIName, ref.name
	return decoded, nil
}

// DecodeMulticall splits the calldata of an account __execute__ call into its
// calls and decodes each against the class its target contract ran at block.
// Calls to unknown contracts or classes are returned as UnknownOperation with
// their raw calldata.
// DecodeMulticall 将账户 __execute__ 调用的 calldata 拆分为各个调用，并根据目标合约在 block 时
// 运行的合约类逐一解码。对未知合约或合约类的调用以 UnknownOperation 返回，并携带原始 calldata。
func (d *Dispatcher) DecodeMulticall(ctx context.Context, calldata []*felt.Felt, block uint64) ([]*Operation, error) {
	values, consumed, err := abi.DecodePrefix(multicallTypes, calldata)
	if err != nil {
		return nil, fmt.Errorf("multicall: %w", err)
	}
	if d.config.StrictCalldata && consumed != len(calldata) {
		return nil, fmt.Errorf("multicall: %w", &abi.CalldataArityError{What: "calldata length", Want: consumed, Got: len(calldata)})
	}
	calls := values[0].([]any)
	ops := make([]*Operation, len(calls))
	for i, c := range calls {
		call := c.(abi.Values)
		to, _ := call.Get("to")
		selector, _ := call.Get("selector")
		raw, _ := call.Get("calldata")

		args := raw.([]any)
		data := make([]*felt.Felt, len(args))
		for j, arg := range args {
			data[j] = arg.(*felt.Felt)
		}
		if ops[i], err = d.decodeCall(ctx, to.(*felt.Felt), selector.(*felt.Felt), data, block); err != nil {
			var opErr *OperationError
			if errors.As(err, &opErr) {
				opErr.Index = i
			}
			return nil, err
		}
	}
	return ops, nil
}

// decodeCall decodes one call of a multicall.
func (d *Dispatcher) decodeCall(ctx context.Context, contract, selector *felt.Felt, calldata []*felt.Felt, block uint64) (*Operation, error) {
	op := &Operation{
		Name:     UnknownOperation,
		Contract: contract,
		Selector: selector,
		Calldata: calldata,
	}
	classHash, err := d.ClassAt(contract, block)
	switch {
	case errors.Is(err, ErrUnknownContract):
		log.Debug("Unknown contract in multicall", "contract", contract, "block", block)
		return op, nil
	case err != nil:
		return nil, &OperationError{Contract: contract, Selector: selector, Err: err}
	}
	op.Class = classHash

	entry, err := d.class(ctx, classHash)
	switch {
	case errors.Is(err, ErrUnknownClass):
		log.Debug("Unknown class in multicall", "contract", contract, "class", classHash, "block", block)
		return op, nil
	case err != nil:
		return nil, &OperationError{Contract: contract, Class: classHash, Selector: selector, Err: err}
	}
	ref, ok := entry.functions[*selector]
	if !ok {
		return nil, &OperationError{Contract: contract, Class: classHash, Selector: selector, Err: ErrUnknownSelector}
	}
	params, err := d.decodeParams(ref.fn.Inputs, calldata)
	if err != nil {
		return nil, &OperationError{Contract: contract, Class: classHash, Selector: selector, Err: err}
	}
	op.Name, op.ABIName, op.Params = ref.name, entry.info.ABIName, params
	return op, nil
}
