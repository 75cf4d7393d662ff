package lifecycle

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	httperr "github.com/claimledger-lab/claimledger/internal/core/errors"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
	"github.com/claimledger-lab/claimledger/internal/core/storage/memory"
	"github.com/claimledger-lab/claimledger/internal/ledger"
	storagemocks "github.com/claimledger-lab/claimledger/internal/mocks/storage"
)

func newTestRouter(t *testing.T, store storage.ClaimStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(ledger.NewService(store, &ledger.SequenceIDs{}, nil, ledger.Options{}), 1)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestCreateTopicHandler(t *testing.T) {
	r := newTestRouter(t, memory.NewClaimStore())

	resp := postJSON(r, "/api/create-topic", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "0.0.1", decode[v1.TopicResponse](t, resp).TopicID)
}

func TestSubmitHandler(t *testing.T) {
	r := newTestRouter(t, memory.NewClaimStore())

	body, _ := json.Marshal(v1.SubmitRequest{
		CustomerID: "cust-1",
		Documents: []v1.DocumentUpload{
			{Filename: "a.txt", Content: base64.StdEncoding.EncodeToString([]byte("hello"))},
			{Filename: "b.txt", Content: "not base64!"},
			{Filename: "c.pdf"},
		},
	})
	resp := postJSON(r, "/api/claims/submit", string(body))
	require.Equal(t, http.StatusOK, resp.Code)

	out := decode[v1.SubmitResponse](t, resp)
	require.Equal(t, "C-00000001", out.ClaimID)
	require.Equal(t, "cust-1", out.CustomerID)
	require.Equal(t, v1.StatusSubmitted, out.Status)
	require.Len(t, out.IPFSCIDs, 2)
	require.Regexp(t, `^0\.0\.\d+@\d+$`, out.TransactionID)
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, out.Timestamp)
}

func TestSubmitHandler_EmptyBodyCreatesClaim(t *testing.T) {
	r := newTestRouter(t, memory.NewClaimStore())

	resp := postJSON(r, "/api/claims/submit", "")
	require.Equal(t, http.StatusOK, resp.Code)

	out := decode[v1.SubmitResponse](t, resp)
	require.Equal(t, "anonymous", out.CustomerID)
	require.NotNil(t, out.IPFSCIDs)
}

func TestLifecycleHandlers_FullFlow(t *testing.T) {
	store := memory.NewClaimStore()
	r := newTestRouter(t, store)

	resp := postJSON(r, "/api/claims/submit", `{"claim_id":"C-1","customer_id":"cust-1"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = postJSON(r, "/api/claims/extract", `{"claim_id":"C-1","extracted":{"Deductible":300}}`)
	require.Equal(t, http.StatusOK, resp.Code)
	extracted := decode[v1.ExtractResponse](t, resp)
	require.Equal(t, v1.StatusExtracted, extracted.Status)
	require.Equal(t, "cust-1", extracted.CustomerID)

	resp = postJSON(r, "/api/claims/decision", `{"claim_id":"C-1","decision":"approved"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"approved_amount":0`)
	decided := decode[v1.DecisionResponse](t, resp)
	require.Equal(t, v1.StatusDecided, decided.Status)
	require.Equal(t, v1.DecisionApproved, decided.Decision)

	claim, err := store.GetClaim(t.Context(), "C-1")
	require.NoError(t, err)
	require.Len(t, claim.Events, 3)
}

func TestDecisionHandler_AmountRoundTrips(t *testing.T) {
	r := newTestRouter(t, memory.NewClaimStore())

	resp := postJSON(r, "/api/claims/decision", `{"claim_id":"C-1","decision":"approved","approved_amount":1250.75,"reason":"covered"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"approved_amount":1250.75`)
}

func TestLifecycleHandlers_BadRequests(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		body      string
		wantCode  int
		wantType  string
		wantInMsg string
	}{
		{
			name:      "extract without claim_id",
			path:      "/api/claims/extract",
			body:      `{"customer_id":"cust-1"}`,
			wantCode:  http.StatusBadRequest,
			wantType:  httperr.HttpInvalidArgumentError,
			wantInMsg: "claim_id is required",
		},
		{
			name:      "decision without claim_id",
			path:      "/api/claims/decision",
			body:      `{"decision":"approved"}`,
			wantCode:  http.StatusBadRequest,
			wantType:  httperr.HttpInvalidArgumentError,
			wantInMsg: "claim_id is required",
		},
		{
			name:      "decision with unknown value",
			path:      "/api/claims/decision",
			body:      `{"claim_id":"C-1","decision":"pending"}`,
			wantCode:  http.StatusBadRequest,
			wantType:  httperr.HttpInvalidArgumentError,
			wantInMsg: "decision must be",
		},
		{
			name:     "malformed json",
			path:     "/api/claims/submit",
			body:     `{"claim_id":`,
			wantCode: http.StatusBadRequest,
			wantType: httperr.HttpInvalidJsonError,
		},
		{
			name:     "oversized body",
			path:     "/api/claims/submit",
			body:     `{"metadata":{"blob":"` + strings.Repeat("x", 2*1024*1024) + `"}}`,
			wantCode: http.StatusRequestEntityTooLarge,
			wantType: httperr.HttpInvalidJsonError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewClaimStore()
			r := newTestRouter(t, store)

			resp := postJSON(r, tc.path, tc.body)
			require.Equal(t, tc.wantCode, resp.Code)

			errResp := decode[httperr.ErrorResponse](t, resp)
			require.Equal(t, tc.wantType, errResp.ErrorType)
			require.Contains(t, errResp.Message, tc.wantInMsg)

			_, err := store.GetClaim(t.Context(), "C-1")
			require.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestLifecycleHandlers_StoreFailure(t *testing.T) {
	store := storagemocks.NewClaimStore(t)
	store.EXPECT().
		GetClaim(mock.Anything, "C-1").
		Return(nil, errors.New("connection refused")).
		Once()

	r := newTestRouter(t, store)
	resp := postJSON(r, "/api/claims/extract", `{"claim_id":"C-1"}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	errResp := decode[httperr.ErrorResponse](t, resp)
	require.Equal(t, httperr.HttpInternalError, errResp.ErrorType)
	require.Equal(t, msgTransitionFailed, errResp.Message)
}

func TestDecodeContent(t *testing.T) {
	require.Nil(t, decodeContent(""))
	require.Equal(t, []byte("hello"), decodeContent("aGVsbG8="))
	require.Equal(t, []byte("plain text"), decodeContent("plain text"))
	require.True(t, bytes.Equal([]byte("abc?"), decodeContent("abc?")))
}
