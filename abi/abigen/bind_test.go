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

package abigen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readABI(t *testing.T, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "testdata", name+".json"))
	require.NoError(t, err)
	return string(raw)
}

// declarations returns the sorted top level identifiers declared by code,
// skipping methods and blank identifiers.
func declarations(t *testing.T, code string) []string {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "bindings.go", code, 0)
	require.NoError(t, err, code)

	var names []string
	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.FuncDecl:
			if decl.Recv == nil {
				names = append(names, decl.Name.Name)
			}
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				switch spec := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, spec.Name.Name)
				case *ast.ValueSpec:
					for _, n := range spec.Names {
						if n.Name != "_" {
							names = append(names, n.Name)
						}
					}
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

func TestBindUserTypes(t *testing.T) {
	t.Parallel()
	code, err := Bind([]string{"game"}, []string{readABI(t, "out_of_order")}, "bindings")
	require.NoError(t, err)

	want := []string{
		"GameABI",
		"GameSpawnSelector",
		"Item",
		"ParseGame",
		"Player",
		"PlayerState",
		"PlayerStateDead",
		"PlayerStateIdle",
		"PlayerStateMoving",
		"Position",
	}
	got := declarations(t, code)
	if d := diff.Diff(strings.Join(want, "\n"), strings.Join(got, "\n")); d != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", d)
	}
	for _, pattern := range []string{
		`type Player struct \{`,
		`Id\s+\*felt\.Felt\s+` + "`" + `cairo:"id"` + "`",
		`Position\s+Position\s+` + "`" + `cairo:"position"` + "`",
		`State\s+abi\.EnumValue\s+` + "`" + `cairo:"state"` + "`",
		`Items\s+\[\]\[\]any\s+` + "`" + `cairo:"items"` + "`",
		`Durability\s+uint16\s+` + "`" + `cairo:"durability"` + "`",
		`PlayerStateIdle\s+PlayerState = 0\s`,
		`PlayerStateMoving\s+PlayerState = 1\s+// Struct\(game::models::Position\)\{x:U32,y:U32\}`,
		`PlayerStateDead\s+PlayerState = 2\s+// Option\[ContractAddress\]`,
		`case PlayerStateMoving:\s+return "Moving"`,
	} {
		assert.Regexp(t, regexp.MustCompile(pattern), code)
	}
}

func TestBindSelectors(t *testing.T) {
	t.Parallel()
	code, err := Bind([]string{"ERC20"}, []string{readABI(t, "erc20")}, "token")
	require.NoError(t, err)

	for _, pattern := range []string{
		`package token`,
		`ERC20TransferSelector\s+= felt\.MustFromHex\("0x0083afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e"\)`,
		`ERC20TransferEventSelector\s+= felt\.MustFromHex\("0x0099cd8bde557814842a3121e8ddfd433a539b8c9f14bf31ebf108d12e6196e9"\)`,
		`// Function\(recipient:ContractAddress,amount:U256\) -> \(Bool\)`,
		`ERC20BalanceOfSelector\s+=`,
		`ERC20TotalSupplySelector\s+=`,
		`ERC20SumAllSelector\s+=`,
		`ERC20DepositSelector\s+=`,
		`ERC20ConstructorSelector\s+=`,
		`ERC20ApprovalEventSelector\s+=`,
		`return abi\.Parse\(\[\]byte\(ERC20ABI\), classHash, "ERC20"\)`,
	} {
		assert.Regexp(t, regexp.MustCompile(pattern), code)
	}
	// the ABI constant holds the compacted JSON
	assert.Contains(t, code, `const ERC20ABI = "[{\"type\":\"impl\"`)
	assert.NotContains(t, code, "EventEventSelector", "wrapper enum events are not bound")
}

func TestBindSharedTypes(t *testing.T) {
	t.Parallel()
	game := readABI(t, "out_of_order")
	code, err := Bind([]string{"lobby", "arena"}, []string{game, game}, "bindings")
	require.NoError(t, err)

	got := declarations(t, code)
	counts := make(map[string]int)
	for _, n := range got {
		counts[n]++
	}
	for n, c := range counts {
		if c != 1 {
			t.Errorf("%s declared %d times: %s", n, c, spew.Sdump(got))
		}
	}
	assert.Contains(t, got, "LobbySpawnSelector")
	assert.Contains(t, got, "ArenaSpawnSelector")
	assert.Equal(t, 1, strings.Count(code, "type Player struct"))
}

func TestBindErrors(t *testing.T) {
	t.Parallel()
	game := readABI(t, "out_of_order")

	_, err := Bind([]string{"a"}, []string{game, game}, "bindings")
	assert.ErrorContains(t, err, "1 contract names for 2 ABIs")

	_, err = Bind([]string{"game", "Game"}, []string{game, game}, "bindings")
	assert.ErrorContains(t, err, "duplicated contract identifier")

	_, err = Bind([]string{"game"}, []string{game}, "func")
	assert.ErrorContains(t, err, "invalid package name")

	_, err = Bind([]string{"broken"}, []string{`[{"type": "function"}]`}, "bindings")
	assert.Error(t, err)
}

func TestIdentifier(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name, prefix, want string
	}{
		{"balance_of", "M", "BalanceOf"},
		{"__execute__", "M", "Execute"},
		{"1st_place", "V", "V1stPlace"},
		{"_", "F", "F"},
		{"Transfer", "E", "Transfer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, identifier(tt.name, tt.prefix), tt.name)
	}
}
