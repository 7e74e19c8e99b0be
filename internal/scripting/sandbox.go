// Package scripting embeds a sandboxed GopherLua interpreter for spell hook
// scripts. The sandbox exposes no filesystem, OS, or network access; anything
// a hook may touch is registered explicitly through RegisterModules.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps Lua opcodes per hook invocation when the
// caller passes no explicit limit.
const DefaultInstructionLimit = 100_000

// opcodeBudget cancels itself once Done has been observed limit times.
// GopherLua consults ctx.Done() once per VM instruction, so the budget
// terminates runaway scripts after an exact opcode count rather than after
// wall-clock time.
type opcodeBudget struct {
	context.Context
	stop context.CancelFunc
	left atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.stop()
	}
	return b.Context.Done()
}

// NewSandboxedState builds a Lua state restricted to the base, table, string,
// and math libraries, with the code-loading globals removed and execution
// capped at instLimit opcodes (DefaultInstructionLimit when instLimit <= 0).
//
// Postcondition: the caller owns the state and must call both cancel and
// L.Close when finished with it.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []func(*lua.LState) int{
		lua.OpenBase,
		lua.OpenTable,
		lua.OpenString,
		lua.OpenMath,
	} {
		open(L)
	}

	// OpenBase installs escape hatches the sandbox must not offer.
	for _, g := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(g, lua.LNil)
	}

	base, cancel := context.WithCancel(context.Background())
	budget := &opcodeBudget{Context: base, stop: cancel}
	budget.left.Store(int64(instLimit))
	L.SetContext(budget)

	return L, cancel
}
