package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/norvaldb/land-of-mist/internal/game/attribute"
	"github.com/norvaldb/land-of-mist/internal/game/status"
)

func burning() status.Active {
	return status.Active{
		Name: "burning", Kind: status.KindDamageOverTime,
		Element: status.ElementFire, Magnitude: 3, Remaining: 2, MaxStacks: 5, Stacks: 1,
	}
}

func regrowth() status.Active {
	return status.Active{
		Name: "regrowth", Kind: status.KindHealingOverTime,
		Element: status.ElementEarth, Magnitude: 2.4, Remaining: 3,
	}
}

func weakened() status.Active {
	return status.Active{
		Name: "weakened", Kind: status.KindDebuff,
		Element:        status.ElementPoison,
		AttributeDelta: attribute.Set{Strength: -2},
		Remaining:      3, MaxStacks: 3, Stacks: 1,
	}
}

func paralyzed() status.Active {
	return status.Active{
		Name: "paralyzed", Kind: status.KindParalysis,
		Element: status.ElementPoison, Remaining: 1,
	}
}

func TestLedger_Apply(t *testing.T) {
	l := status.NewLedger()
	require.NoError(t, l.Apply(burning()))
	assert.True(t, l.Has("burning"))
	assert.Equal(t, 1, l.Stacks("burning"))
}

func TestLedger_Apply_RejectsBadInput(t *testing.T) {
	l := status.NewLedger()
	assert.Error(t, l.Apply(status.Active{Kind: status.KindDamage}))
	assert.Error(t, l.Apply(status.Active{Name: "mystery", Kind: "mystery"}))
}

func TestLedger_Apply_StacksCapped(t *testing.T) {
	l := status.NewLedger()
	b := burning()
	b.Stacks = 9 // MaxStacks is 5
	require.NoError(t, l.Apply(b))
	assert.Equal(t, 5, l.Stacks("burning"))
}

func TestLedger_Apply_UnstackableStaysAtOne(t *testing.T) {
	l := status.NewLedger()
	require.NoError(t, l.Apply(regrowth()))
	require.NoError(t, l.Apply(regrowth()))
	assert.Equal(t, 1, l.Stacks("regrowth"))
}

func TestLedger_Reapply_IncrementsAndExtends(t *testing.T) {
	l := status.NewLedger()
	require.NoError(t, l.Apply(burning()))

	refresh := burning()
	refresh.Remaining = 4
	require.NoError(t, l.Apply(refresh))
	assert.Equal(t, 2, l.Stacks("burning"))

	// Shorter re-apply must not shorten the remaining duration.
	short := burning()
	short.Remaining = 1
	require.NoError(t, l.Apply(short))
	all := l.All()
	require.Len(t, all, 1)
	assert.Equal(t, 4, all[0].Remaining)
}

func TestLedger_Tick_EmitsEventsAndExpires(t *testing.T) {
	l := status.NewLedger()
	b := burning()
	b.Remaining = 1
	require.NoError(t, l.Apply(b))
	require.NoError(t, l.Apply(regrowth()))

	events, expired := l.Tick()
	require.Len(t, events, 2)
	assert.Equal(t, "burning", events[0].Name)
	assert.Equal(t, 3, events[0].Amount)
	assert.Equal(t, "regrowth", events[1].Name)
	assert.Equal(t, 2, events[1].Amount, "fractional magnitude rounds to nearest")
	assert.Equal(t, []string{"burning"}, expired)
	assert.False(t, l.Has("burning"))
	assert.True(t, l.Has("regrowth"))
}

func TestLedger_Tick_StackedMagnitude(t *testing.T) {
	l := status.NewLedger()
	b := burning()
	b.Stacks = 3
	require.NoError(t, l.Apply(b))

	events, _ := l.Tick()
	require.Len(t, events, 1)
	assert.Equal(t, 9, events[0].Amount)
}

func TestLedger_Tick_PermanentPersists(t *testing.T) {
	l := status.NewLedger()
	blessing := status.Active{
		Name: "blessing", Kind: status.KindBuff,
		AttributeDelta: attribute.Set{Wisdom: 1}, Remaining: -1,
	}
	require.NoError(t, l.Apply(blessing))

	for i := 0; i < 5; i++ {
		_, expired := l.Tick()
		assert.Empty(t, expired)
	}
	assert.True(t, l.Has("blessing"))
}

func TestLedger_AttributeDelta(t *testing.T) {
	l := status.NewLedger()
	w := weakened()
	w.Stacks = 2
	require.NoError(t, l.Apply(w))
	require.NoError(t, l.Apply(status.Active{
		Name: "stoneskin", Kind: status.KindBuff,
		AttributeDelta: attribute.Set{Constitution: 2}, Remaining: 3,
	}))
	// Over-time entries contribute nothing to attributes.
	require.NoError(t, l.Apply(burning()))

	delta := l.AttributeDelta()
	assert.Equal(t, -4, delta.Strength)
	assert.Equal(t, 2, delta.Constitution)
}

func TestLedger_CanAct(t *testing.T) {
	l := status.NewLedger()
	assert.True(t, l.CanAct())
	require.NoError(t, l.Apply(paralyzed()))
	assert.False(t, l.CanAct())

	_, expired := l.Tick()
	assert.Equal(t, []string{"paralyzed"}, expired)
	assert.True(t, l.CanAct())
}

func TestLedger_Remove(t *testing.T) {
	l := status.NewLedger()
	require.NoError(t, l.Apply(weakened()))
	l.Remove("weakened")
	assert.False(t, l.Has("weakened"))
	l.Remove("weakened") // no-op
}

func TestLedger_StacksNeverExceedCap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := status.NewLedger()
		cap := rapid.IntRange(1, 6).Draw(t, "cap")
		applies := rapid.IntRange(1, 20).Draw(t, "applies")
		for i := 0; i < applies; i++ {
			a := burning()
			a.MaxStacks = cap
			a.Stacks = rapid.IntRange(1, 8).Draw(t, "stacks")
			require.NoError(t, l.Apply(a))
		}
		got := l.Stacks("burning")
		if got < 1 || got > cap {
			t.Fatalf("stacks = %d, want within [1, %d]", got, cap)
		}
	})
}
