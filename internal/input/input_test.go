package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyTable(t *testing.T) {
	d, err := NewDispatcher(nil)
	require.NoError(t, err)

	cases := []struct {
		key     Key
		current int
		want    int
	}{
		{KeyUp, 5, 4},
		{KeyDown, 5, 6},
		{KeyPageUp, 15, 5},
		{KeyPageDown, 15, 25},
		{KeyHome, 15, 0},
		{KeyEnd, 15, 29},
		{KeyWheelUp, 3, 2},
		{KeyWheelDown, 3, 4},
		{Key("f1"), 3, 3},
	}
	for _, tc := range cases {
		c := d.Handle(Event{Kind: KeyEvent, Key: tc.key})
		assert.Equal(t, tc.want, c.Target(tc.current, 30), "key %s", tc.key)
	}
}

func TestWheelSign(t *testing.T) {
	d, err := NewDispatcher(nil)
	require.NoError(t, err)

	assert.Equal(t, Prev, d.Handle(Event{Kind: WheelEvent, WheelDelta: 120}))
	assert.Equal(t, Next, d.Handle(Event{Kind: WheelEvent, WheelDelta: -0.5}))
	assert.Equal(t, None, d.Handle(Event{Kind: WheelEvent}))
}

func TestOverrides(t *testing.T) {
	d, err := NewDispatcher(map[string]string{"Up": "next10", "end": "none"})
	require.NoError(t, err)

	assert.Equal(t, Next10, d.Handle(Event{Kind: KeyEvent, Key: KeyUp}))
	assert.Equal(t, None, d.Handle(Event{Kind: KeyEvent, Key: KeyEnd}))
	assert.Equal(t, Next, d.Handle(Event{Kind: KeyEvent, Key: KeyDown}))

	_, err = NewDispatcher(map[string]string{"up": "jump"})
	assert.Error(t, err)
}

func TestOverrideUnknownKey(t *testing.T) {
	_, err := NewDispatcher(map[string]string{"pgup": "next"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pgup")

	_, err = NewDispatcher(map[string]string{"WheelDown": "next10"})
	assert.NoError(t, err)
}

func TestGotoTarget(t *testing.T) {
	assert.Equal(t, 7, Goto(7).Target(2, 3))
	assert.Equal(t, 2, Last.Target(0, 3))
	assert.Equal(t, 4, None.Target(4, 9))
}
