package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/norvaldb/land-of-mist/internal/rng"
)

// CombatantInfo is a snapshot of a combatant's state passed to Lua hooks.
type CombatantInfo struct {
	ID      string
	Name    string
	HP      int
	MaxHP   int
	Mana    int
	MaxMana int
	Alive   bool
}

// Manager owns one sandboxed LState for spell hook scripts and exposes
// hook dispatch.
//
// Manager is safe for concurrent OnCast after Load completes. The LState
// is single-threaded; the mutex serializes all calls into it.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	cancel func()
	src    rng.Source
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	GetCombatant func(id string) *CombatantInfo
	Damage       func(id string, hp int) error
	Heal         func(id string, hp int) error
	ApplyStatus  func(id, name string, turns int) error
}

// NewManager creates a Manager.
//
// Precondition: src and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(src rng.Source, logger *zap.Logger) *Manager {
	if src == nil {
		panic("scripting: nil rng source")
	}
	if logger == nil {
		panic("scripting: nil logger")
	}
	return &Manager{
		src:    src,
		logger: logger,
	}
}

// Load creates a sandboxed VM, registers all engine.* modules, then
// executes every *.lua file in scriptDir in lexicographic order. Loading
// again replaces the previous VM.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: The VM is ready for OnCast; returns error on Lua load
// failure.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
	}
	m.state = L
	m.cancel = cancel
	m.mu.Unlock()
	return nil
}

// Close releases the VM. Safe to call on an unloaded manager.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
		m.state = nil
		m.cancel = nil
	}
}

// HookName returns the Lua global a spell's cast hook must be bound to.
func HookName(spellID string) string {
	return "on_cast_" + spellID
}

// HasHook reports whether the loaded scripts define a cast hook for the
// spell, without firing it. False when no VM is loaded.
func (m *Manager) HasHook(spellID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	return m.state.GetGlobal(HookName(spellID)) != lua.LNil
}

// OnCast calls the spell's on_cast_<id> hook with the caster snapshot,
// the computed spell power, and the critical flag. Returns the hook's
// first return value as a string (flavor text, typically) and whether a
// hook ran. Missing scripts and missing hooks are a quiet no-op; Lua
// runtime errors are logged at Warn level and never propagated.
func (m *Manager) OnCast(spellID string, caster CombatantInfo, power float64, critical bool) (string, bool) {
	ret, ran := m.callHook(HookName(spellID),
		func(L *lua.LState) lua.LValue { return combatantTable(L, caster) },
		func(L *lua.LState) lua.LValue { return lua.LNumber(power) },
		func(L *lua.LState) lua.LValue { return lua.LBool(critical) },
	)
	if s, ok := ret.(lua.LString); ok {
		return string(s), ran
	}
	return "", ran
}

// callHook calls the named Lua global function. Returns (LNil, false) if
// the hook is not defined, no VM is loaded, or the hook errored.
func (m *Manager) callHook(hook string, args ...func(*lua.LState) lua.LValue) (lua.LValue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		m.logger.Debug("scripting: no VM loaded", zap.String("hook", hook))
		return lua.LNil, false
	}
	L := m.state

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, false
	}

	lvs := make([]lua.LValue, len(args))
	for i, build := range args {
		lvs[i] = build(L)
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lvs...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, false
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, true
}

// combatantTable converts a snapshot into a Lua table.
func combatantTable(L *lua.LState, c CombatantInfo) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(c.ID))
	t.RawSetString("name", lua.LString(c.Name))
	t.RawSetString("hp", lua.LNumber(c.HP))
	t.RawSetString("max_hp", lua.LNumber(c.MaxHP))
	t.RawSetString("mana", lua.LNumber(c.Mana))
	t.RawSetString("max_mana", lua.LNumber(c.MaxMana))
	t.RawSetString("alive", lua.LBool(c.Alive))
	return t
}
