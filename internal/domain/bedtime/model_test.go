package bedtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWakeTime(t *testing.T) {
	cases := map[string]WakeTime{
		"07:00":  {Hour: 7},
		"7:30":   {Hour: 7, Minute: 30},
		" 23:59": {Hour: 23, Minute: 59},
		"6":      {Hour: 6},
		"6:":     {Hour: 6},
	}
	for input, want := range cases {
		got, err := ParseWakeTime(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "24:00", "7:60", "seven", "07:xx"} {
		_, err := ParseWakeTime(input)
		require.Error(t, err, input)
	}
}

func TestWakeTimeJSON(t *testing.T) {
	var wt WakeTime
	require.NoError(t, json.Unmarshal([]byte(`"06:15"`), &wt))
	require.Equal(t, WakeTime{Hour: 6, Minute: 15}, wt)

	require.NoError(t, json.Unmarshal([]byte(`{"hour":9}`), &wt))
	require.Equal(t, WakeTime{Hour: 9}, wt)

	require.NoError(t, json.Unmarshal([]byte(`{"minute":45}`), &wt))
	require.Equal(t, WakeTime{Minute: 45}, wt)

	require.Error(t, json.Unmarshal([]byte(`{"hour":25}`), &wt))

	encoded, err := json.Marshal(WakeTime{Hour: 7, Minute: 5})
	require.NoError(t, err)
	require.JSONEq(t, `"07:05"`, string(encoded))
}

func TestInputValidate(t *testing.T) {
	require.NoError(t, DefaultInput().Validate())

	in := DefaultInput()
	in.SleepGoal = 3.75
	require.Error(t, in.Validate())

	in = DefaultInput()
	in.Coffee = 21
	require.Error(t, in.Validate())

	in = DefaultInput()
	in.WakeTime = WakeTime{Hour: -1}
	require.Error(t, in.Validate())
}

func TestRequestInputDefaults(t *testing.T) {
	goal := 6.5
	in := Request{SleepGoal: &goal}.Input()
	require.Equal(t, Input{WakeTime: WakeTime{Hour: 7}, SleepGoal: 6.5, Coffee: 1}, in)
}
