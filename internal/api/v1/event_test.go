package v1

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEvent_UnmarshalSelectsPayloadVariant(t *testing.T) {
	raw := `{
		"transaction_id": "0.0.42@1700000000000000000",
		"timestamp": "2026-02-08T12:00:00Z",
		"event_type": "claim_decision",
		"payload": {
			"claim_id": "C-1",
			"customer_id": "cust-1",
			"decision": "approved",
			"approved_amount": 1250.5,
			"reason": "Approved"
		}
	}`

	var evt Event
	require.NoError(t, json.Unmarshal([]byte(raw), &evt))
	require.Equal(t, EventClaimDecision, evt.EventType)

	payload, ok := evt.Payload.(*DecisionPayload)
	require.True(t, ok, "payload type %T", evt.Payload)
	require.Equal(t, DecisionApproved, payload.Decision)
	require.True(t, payload.ApprovedAmount.Equal(decimal.RequireFromString("1250.5")))
}

func TestEvent_UnmarshalRejectsUnknownType(t *testing.T) {
	raw := `{"transaction_id":"x","timestamp":"2026-02-08T12:00:00Z","event_type":"claim_paid","payload":{}}`

	var evt Event
	err := json.Unmarshal([]byte(raw), &evt)
	require.Error(t, err)
	require.ErrorContains(t, err, "unknown event_type")
}

func TestDecisionPayload_AmountIsJSONNumber(t *testing.T) {
	body, err := json.Marshal(&DecisionPayload{
		ClaimID:        "C-1",
		Decision:       DecisionApproved,
		ApprovedAmount: decimal.Zero,
		Reason:         "Approved",
	})
	require.NoError(t, err)
	require.Contains(t, string(body), `"approved_amount":0`)
}

func TestClaim_Validate(t *testing.T) {
	submitted := &Event{EventType: EventClaimSubmitted, Payload: &SubmittedPayload{}}
	decided := &Event{EventType: EventClaimDecision, Payload: &DecisionPayload{}}

	tests := []struct {
		name    string
		claim   Claim
		wantErr string
	}{
		{
			name:  "status matches last event",
			claim: Claim{ClaimID: "C-1", Status: StatusDecided, Events: []*Event{submitted, decided}},
		},
		{
			name:    "empty history",
			claim:   Claim{ClaimID: "C-1", Status: StatusSubmitted},
			wantErr: "has no events",
		},
		{
			name:    "status drift",
			claim:   Claim{ClaimID: "C-1", Status: StatusSubmitted, Events: []*Event{submitted, decided}},
			wantErr: "does not match",
		},
		{
			name:    "missing id",
			claim:   Claim{Status: StatusSubmitted, Events: []*Event{submitted}},
			wantErr: "claim_id is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.claim.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestDecision_DefaultReason(t *testing.T) {
	require.Equal(t, "Approved", DecisionApproved.DefaultReason())
	require.Equal(t, "Rejected", DecisionRejected.DefaultReason())
	require.False(t, Decision("pending").Valid())
}
