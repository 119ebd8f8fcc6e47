package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSaveRequest_Nested(t *testing.T) {
	req, err := DecodeSaveRequest(strings.NewReader(`{"project": {"square_footage": 100}, "result": {"total_cost": 5}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"square_footage": 100}`, string(req.Project))
	assert.JSONEq(t, `{"total_cost": 5}`, string(req.Result))
}

func TestDecodeSaveRequest_ProjectOnly(t *testing.T) {
	req, err := DecodeSaveRequest(strings.NewReader(`{"project": {"square_footage": 100}}`))
	require.NoError(t, err)
	assert.Nil(t, req.Result)
}

func TestDecodeSaveRequest_FlatResultKeys(t *testing.T) {
	body := `{
		"project": {"square_footage": 5000},
		"total_cost": 750000,
		"categories": {},
		"rooms": {"room1": {"total_cost": 250000}, "room2": {"total_cost": 150000}}
	}`
	req, err := DecodeSaveRequest(strings.NewReader(body))
	require.NoError(t, err)
	assert.JSONEq(t, `{"square_footage": 5000}`, string(req.Project))
	assert.JSONEq(t, `{
		"total_cost": 750000,
		"categories": {},
		"rooms": {"room1": {"total_cost": 250000}, "room2": {"total_cost": 150000}}
	}`, string(req.Result))
}

func TestDecodeSaveRequest_NullResultWithFlatKeys(t *testing.T) {
	req, err := DecodeSaveRequest(strings.NewReader(`{"project": {}, "result": null, "total_cost": 10}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_cost": 10}`, string(req.Result))
}

func TestDecodeSaveRequest_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown field", `{"projekt": {}}`, `unknown field "projekt"`},
		{"both result forms", `{"project": {}, "result": {"total_cost": 1}, "total_cost": 2}`, "cannot be combined"},
		{"not an object", `[1, 2]`, "cannot unmarshal"},
		{"null body", `null`, "must be an object"},
		{"malformed", `{"project": `, "unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSaveRequest(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
