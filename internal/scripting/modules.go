package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.* Lua table into L. Every function
// tolerates a nil Go-side callback by degrading to a no-op so that content
// scripts can be loaded and linted without a live encounter behind them.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetField(engine, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "get_combatant", L.NewFunction(m.luaGetCombatant))
	L.SetField(engine, "damage", L.NewFunction(m.luaDamage))
	L.SetField(engine, "heal", L.NewFunction(m.luaHeal))
	L.SetField(engine, "apply_status", L.NewFunction(m.luaApplyStatus))

	L.SetGlobal("engine", engine)
}

// engine.log(msg) -- structured info log tagged as script output.
func (m *Manager) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	m.logger.Info("script", zap.String("msg", msg))
	return 0
}

// engine.roll(n) -- uniform integer in [1, n], the d(n) convention.
func (m *Manager) luaRoll(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 {
		L.ArgError(1, "roll size must be positive")
		return 0
	}
	L.Push(lua.LNumber(m.src.Intn(n) + 1))
	return 1
}

// engine.get_combatant(id) -- snapshot table for the combatant, or nil.
func (m *Manager) luaGetCombatant(L *lua.LState) int {
	id := L.CheckString(1)
	if m.GetCombatant == nil {
		L.Push(lua.LNil)
		return 1
	}
	info := m.GetCombatant(id)
	if info == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(combatantTable(L, *info))
	return 1
}

// engine.damage(id, hp) -- deal hp damage to the combatant.
func (m *Manager) luaDamage(L *lua.LState) int {
	id := L.CheckString(1)
	hp := L.CheckInt(2)
	if m.Damage == nil {
		return 0
	}
	if err := m.Damage(id, hp); err != nil {
		m.logger.Warn("script damage rejected",
			zap.String("target", id),
			zap.Error(err),
		)
	}
	return 0
}

// engine.heal(id, hp) -- restore hp to the combatant.
func (m *Manager) luaHeal(L *lua.LState) int {
	id := L.CheckString(1)
	hp := L.CheckInt(2)
	if m.Heal == nil {
		return 0
	}
	if err := m.Heal(id, hp); err != nil {
		m.logger.Warn("script heal rejected",
			zap.String("target", id),
			zap.Error(err),
		)
	}
	return 0
}

// engine.apply_status(id, name, turns) -- attach a named status effect.
func (m *Manager) luaApplyStatus(L *lua.LState) int {
	id := L.CheckString(1)
	name := L.CheckString(2)
	turns := L.CheckInt(3)
	if m.ApplyStatus == nil {
		return 0
	}
	if err := m.ApplyStatus(id, name, turns); err != nil {
		m.logger.Warn("script status rejected",
			zap.String("target", id),
			zap.String("status", name),
			zap.Error(err),
		)
	}
	return 0
}
