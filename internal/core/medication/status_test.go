package medication

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"AVAILABLE", StatusAvailable},
		{"tension", StatusTension},
		{" Rupture ", StatusRupture},
		{"UNKNOWN", StatusUnknown},
		{"", StatusUnknown},
		{"DISCONTINUED", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.in))
		})
	}
}

func TestStatus_DisplayName(t *testing.T) {
	assert.Equal(t, "Disponible", StatusAvailable.DisplayName())
	assert.Equal(t, "Tension", StatusTension.DisplayName())
	assert.Equal(t, "Rupture", StatusRupture.DisplayName())
	assert.Equal(t, "Inconnu", StatusUnknown.DisplayName())
	assert.Equal(t, "Inconnu", Status(42).DisplayName())
}

func TestMedication_JSONStatus(t *testing.T) {
	var med Medication
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m1","name":"Doliprane","status":"RUPTURE"}`), &med))
	assert.Equal(t, StatusRupture, med.Status)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"m2","name":"X","status":"weird"}`), &med))
	assert.Equal(t, StatusUnknown, med.Status)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"m3","name":"Y","status":null}`), &med))
	assert.Equal(t, StatusUnknown, med.Status)

	out, err := json.Marshal(Medication{ID: "m4", Name: "Z", Status: StatusTension})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"status":"TENSION"`)
}

func TestAlert_Wants(t *testing.T) {
	a := Alert{NotifyOnAvailable: true, NotifyOnRupture: true}
	assert.True(t, a.Wants(StatusAvailable))
	assert.False(t, a.Wants(StatusTension))
	assert.True(t, a.Wants(StatusRupture))
	assert.False(t, a.Wants(StatusUnknown))
}
