package scripting_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/norvaldb/land-of-mist/internal/scripting"
)

// runHook loads luaSrc into a fresh VM and fires the named spell hook.
func runHook(t *testing.T, mgr *scripting.Manager, luaSrc, spellID string) (string, bool) {
	t.Helper()
	dir := writeTempLua(t, "test.lua", luaSrc)
	require.NoError(t, mgr.Load(dir, 0))
	return mgr.OnCast(spellID, casterSnapshot(), 1, false)
}

func TestEngineLog_WritesToLogger(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()

	_, ran := runHook(t, mgr, `
		function on_cast_chant(caster, power, critical)
			engine.log("hello from lua")
		end
	`, "chant")
	require.True(t, ran)

	entries := logs.FilterLevelExact(zap.InfoLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "script", entries[0].Message)
	assert.Equal(t, "hello from lua", entries[0].ContextMap()["msg"])
}

func TestEngineRoll_ZeroSides_IsLuaError(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()

	_, ran := runHook(t, mgr, `
		function on_cast_gamble(caster, power, critical)
			engine.roll(0)
		end
	`, "gamble")
	assert.False(t, ran, "argument error should abort the hook")
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestEngineDamage_CallbackError_WarnNotFatal(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()
	mgr.Damage = func(id string, hp int) error {
		return errors.New("target already dead")
	}

	text, ran := runHook(t, mgr, `
		function on_cast_smite(caster, power, critical)
			engine.damage(caster.id, 3)
			return "the blow lands on a corpse"
		end
	`, "smite")
	require.True(t, ran, "callback errors must not abort the hook")
	assert.Equal(t, "the blow lands on a corpse", text)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestEngineHeal_CallbackError_WarnNotFatal(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()
	mgr.Heal = func(id string, hp int) error {
		return errors.New("no such combatant")
	}

	_, ran := runHook(t, mgr, `
		function on_cast_mend(caster, power, critical)
			engine.heal("ghost", 3)
		end
	`, "mend")
	require.True(t, ran)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestEngineApplyStatus_CallbackError_WarnNotFatal(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()
	mgr.ApplyStatus = func(id, name string, turns int) error {
		return errors.New("immune")
	}

	_, ran := runHook(t, mgr, `
		function on_cast_hex(caster, power, critical)
			engine.apply_status(caster.id, "hexed", 2)
		end
	`, "hex")
	require.True(t, ran)
	warns := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "hexed", warns[0].ContextMap()["status"])
}

func TestEngineGetCombatant_UnknownID_IsNil(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	mgr.GetCombatant = func(id string) *scripting.CombatantInfo { return nil }

	text, ran := runHook(t, mgr, `
		function on_cast_scry(caster, power, critical)
			if engine.get_combatant("nobody") == nil then
				return "the mists reveal nothing"
			end
		end
	`, "scry")
	require.True(t, ran)
	assert.Equal(t, "the mists reveal nothing", text)
}

func TestProperty_EngineRoll_InBounds(t *testing.T) {
	// The hook rolls a die with `power` sides and reports the result
	// through the damage callback.
	dir := writeTempLua(t, "roll.lua", `
		function on_cast_gamble(caster, power, critical)
			engine.damage(caster.id, engine.roll(power))
		end
	`)

	rapid.Check(t, func(rt *rapid.T) {
		sides := rapid.IntRange(1, 100).Draw(rt, "sides")
		draw := rapid.IntRange(0, 99).Draw(rt, "draw")

		core, _ := observer.New(zap.DebugLevel)
		mgr := scripting.NewManager(fixedSource{n: draw}, zap.New(core))
		defer mgr.Close()

		var got int
		mgr.Damage = func(id string, hp int) error {
			got = hp
			return nil
		}
		require.NoError(rt, mgr.Load(dir, 0))

		_, ran := mgr.OnCast("gamble", casterSnapshot(), float64(sides), false)
		require.True(rt, ran)

		if got < 1 || got > sides {
			rt.Fatalf("roll(%d) returned %d, want [1, %d]", sides, got, sides)
		}
	})
}
