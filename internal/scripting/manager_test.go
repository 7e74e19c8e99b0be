package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/norvaldb/land-of-mist/internal/rng"
	"github.com/norvaldb/land-of-mist/internal/scripting"
)

// fixedSource returns the same value on every draw.
type fixedSource struct {
	n int
	f float64
}

func (s fixedSource) Intn(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func (s fixedSource) Float64() float64 { return s.f }

var _ rng.Source = fixedSource{}

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return scripting.NewManager(fixedSource{n: 3}, zap.New(core)), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func casterSnapshot() scripting.CombatantInfo {
	return scripting.CombatantInfo{
		ID:      "pc-1",
		Name:    "Aldric",
		HP:      18,
		MaxHP:   24,
		Mana:    6,
		MaxMana: 10,
		Alive:   true,
	}
}

func TestHookName(t *testing.T) {
	assert.Equal(t, "on_cast_fireball", scripting.HookName("fireball"))
}

func TestManager_OnCast_ReturnsFlavorText(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	dir := writeTempLua(t, "fireball.lua", `
		function on_cast_fireball(caster, power, critical)
			if critical then
				return caster.name .. " engulfs the field in flame!"
			end
			return "the air ignites"
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("fireball", casterSnapshot(), 12.5, false)
	assert.True(t, ran)
	assert.Equal(t, "the air ignites", text)

	text, ran = mgr.OnCast("fireball", casterSnapshot(), 12.5, true)
	assert.True(t, ran)
	assert.Equal(t, "Aldric engulfs the field in flame!", text)
}

func TestManager_OnCast_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	dir := writeTempLua(t, "empty.lua", `-- no hooks here`)
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("ice_lance", casterSnapshot(), 5, false)
	assert.False(t, ran)
	assert.Empty(t, text)
}

func TestManager_OnCast_NoVMLoaded_NoOp(t *testing.T) {
	mgr, logs := newTestManager(t)
	text, ran := mgr.OnCast("fireball", casterSnapshot(), 5, false)
	assert.False(t, ran)
	assert.Empty(t, text)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.DebugLevel).Len(),
		"expected Debug log for missing VM")
}

func TestManager_OnCast_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()
	dir := writeTempLua(t, "bad.lua", `
		function on_cast_curse(caster, power, critical)
			error("intentional error")
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("curse", casterSnapshot(), 5, false)
	assert.False(t, ran)
	assert.Empty(t, text)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len(),
		"expected Warn log for Lua runtime error")
}

func TestManager_OnCast_HookSeesCasterFields(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	dir := writeTempLua(t, "introspect.lua", `
		function on_cast_scry(caster, power, critical)
			return caster.id .. "/" .. caster.hp .. "/" .. caster.max_mana
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("scry", casterSnapshot(), 1, false)
	require.True(t, ran)
	assert.Equal(t, "pc-1/18/10", text)
}

func TestManager_EngineDamage_CallbackInvoked(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()

	var gotID string
	var gotHP int
	mgr.Damage = func(id string, hp int) error {
		gotID = id
		gotHP = hp
		return nil
	}

	dir := writeTempLua(t, "burn.lua", `
		function on_cast_burn(caster, power, critical)
			engine.damage(caster.id, power * 2)
			return "flesh sears"
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	_, ran := mgr.OnCast("burn", casterSnapshot(), 4, false)
	require.True(t, ran)
	assert.Equal(t, "pc-1", gotID)
	assert.Equal(t, 8, gotHP)
}

func TestManager_EngineHealAndStatus_CallbacksInvoked(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()

	healed := 0
	mgr.Heal = func(id string, hp int) error {
		healed = hp
		return nil
	}
	var statusName string
	var statusTurns int
	mgr.ApplyStatus = func(id, name string, turns int) error {
		statusName = name
		statusTurns = turns
		return nil
	}

	dir := writeTempLua(t, "blessing.lua", `
		function on_cast_blessing(caster, power, critical)
			engine.heal(caster.id, 5)
			engine.apply_status(caster.id, "blessed", 3)
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	_, ran := mgr.OnCast("blessing", casterSnapshot(), 1, false)
	require.True(t, ran)
	assert.Equal(t, 5, healed)
	assert.Equal(t, "blessed", statusName)
	assert.Equal(t, 3, statusTurns)
}

func TestManager_EngineCallbacksNil_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	dir := writeTempLua(t, "safe.lua", `
		function on_cast_safe(caster, power, critical)
			engine.damage(caster.id, 1)
			engine.heal(caster.id, 1)
			engine.apply_status(caster.id, "x", 1)
			local other = engine.get_combatant("nobody")
			if other == nil then
				return "no harm done"
			end
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("safe", casterSnapshot(), 1, false)
	require.True(t, ran)
	assert.Equal(t, "no harm done", text)
}

func TestManager_EngineRoll_UsesSource(t *testing.T) {
	mgr, _ := newTestManager(t) // fixedSource{n: 3} -> roll returns 4
	defer mgr.Close()
	dir := writeTempLua(t, "dice.lua", `
		function on_cast_gamble(caster, power, critical)
			return "rolled " .. engine.roll(6)
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("gamble", casterSnapshot(), 1, false)
	require.True(t, ran)
	assert.Equal(t, "rolled 4", text)
}

func TestManager_EngineGetCombatant_ReturnsSnapshot(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	mgr.GetCombatant = func(id string) *scripting.CombatantInfo {
		if id != "gob-1" {
			return nil
		}
		return &scripting.CombatantInfo{ID: "gob-1", Name: "Goblin", HP: 3, MaxHP: 9, Alive: true}
	}

	dir := writeTempLua(t, "drain.lua", `
		function on_cast_drain(caster, power, critical)
			local target = engine.get_combatant("gob-1")
			return target.name .. " at " .. target.hp .. "/" .. target.max_hp
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("drain", casterSnapshot(), 1, false)
	require.True(t, ran)
	assert.Equal(t, "Goblin at 3/9", text)
}

func TestManager_Load_EmptyDir_NoError(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	require.NoError(t, mgr.Load(t.TempDir(), 0))
	_, ran := mgr.OnCast("anything", casterSnapshot(), 1, false)
	assert.False(t, ran)
}

func TestManager_Load_InvalidLua_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)
	assert.Error(t, mgr.Load(dir, 0))
}

func TestManager_Load_MissingDir_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.Load("/no/such/dir", 0))
}

func TestManager_Load_MultipleFiles_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`base_power = 7`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function on_cast_echo(caster, power, critical)
			return "power " .. base_power
		end
	`), 0644))
	require.NoError(t, mgr.Load(dir, 0))

	text, ran := mgr.OnCast("echo", casterSnapshot(), 1, false)
	require.True(t, ran)
	assert.Equal(t, "power 7", text)
}

func TestManager_Load_ReplacesPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()

	first := writeTempLua(t, "v1.lua", `
		function on_cast_spark(caster, power, critical) return "v1" end
	`)
	require.NoError(t, mgr.Load(first, 0))

	second := writeTempLua(t, "v2.lua", `
		function on_cast_spark(caster, power, critical) return "v2" end
	`)
	require.NoError(t, mgr.Load(second, 0))

	text, ran := mgr.OnCast("spark", casterSnapshot(), 1, false)
	require.True(t, ran)
	assert.Equal(t, "v2", text)
}

func TestManager_Close_ReleasesVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "init.lua", `
		function on_cast_spark(caster, power, critical) return "zap" end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	mgr.Close()

	_, ran := mgr.OnCast("spark", casterSnapshot(), 1, false)
	assert.False(t, ran)
	mgr.Close() // second Close is a no-op
}

func TestNewManager_PanicsOnNilSource(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(nil, zap.NewNop())
	})
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(fixedSource{}, nil)
	})
}

func TestProperty_OnCastUnknownSpellNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	dir := writeTempLua(t, "one.lua", `
		function on_cast_known(caster, power, critical) return "ok" end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	rapid.Check(t, func(rt *rapid.T) {
		spellID := rapid.StringMatching(`[a-z_]{1,12}`).Draw(rt, "spell")
		power := rapid.Float64Range(0, 100).Draw(rt, "power")
		mgr.OnCast(spellID, casterSnapshot(), power, false)
	})
}

func TestProperty_OnCastConcurrent_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	dir := writeTempLua(t, "hooks.lua", `
		function on_cast_spark(caster, power, critical)
			return "zap " .. power
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	const goroutines = 10
	const callsEach = 5
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				text, ran := mgr.OnCast("spark", casterSnapshot(), 2, false)
				assert.True(t, ran)
				assert.Equal(t, "zap 2", text)
			}
		}()
	}
	wg.Wait()
}
