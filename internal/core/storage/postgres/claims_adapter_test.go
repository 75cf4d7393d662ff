package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func submittedEvent(txID string) *v1.Event {
	return &v1.Event{
		TransactionID: txID,
		Timestamp:     "2026-02-08T12:00:00Z",
		EventType:     v1.EventClaimSubmitted,
		Payload: &v1.SubmittedPayload{
			ClaimID:    "C-1",
			CustomerID: "cust-1",
			Documents:  []v1.DocumentRef{{Filename: "report.txt", HasContent: true}},
			IPFSCIDs:   []string{"sha256-abc"},
		},
	}
}

func TestAdapter_ReplaceClaim(t *testing.T) {
	rec := storage.ClaimRecord{ClaimID: "C-1", CustomerID: "cust-1", TopicID: "0.0.5", Status: v1.StatusSubmitted}
	evt := submittedEvent("0.0.9@1")

	tests := []struct {
		name       string
		mockResult func(mock sqlmock.Sqlmock)
		assertions func(t *testing.T, err error)
	}{
		{
			name: "success resets history in one transaction",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(queryReplaceClaimHeader)).
					WithArgs("C-1", "cust-1", "0.0.5", "submitted").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta(queryDeleteClaimEvents)).
					WithArgs("C-1").
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(regexp.QuoteMeta(queryInsertClaimEvent)).
					WithArgs("C-1", "0.0.9@1", "claim_submitted", "2026-02-08T12:00:00Z", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			assertions: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "insert failure rolls back",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(queryReplaceClaimHeader)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(regexp.QuoteMeta(queryDeleteClaimEvents)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(queryInsertClaimEvent)).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			assertions: func(t *testing.T, err error) {
				require.ErrorContains(t, err, "failed to insert claim event")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			tc.mockResult(mock)
			err := adapter.ReplaceClaim(context.Background(), rec, evt)
			tc.assertions(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_AppendEvent(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	evt := &v1.Event{
		TransactionID: "0.0.3@2",
		Timestamp:     "2026-02-08T12:00:01Z",
		EventType:     v1.EventClaimDecision,
		Payload: &v1.DecisionPayload{
			ClaimID:        "C-1",
			Decision:       v1.DecisionApproved,
			ApprovedAmount: decimal.NewFromInt(100),
			Reason:         "Approved",
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryAppendClaimHeader)).
		WithArgs("C-1", "cust-1", "0.0.5", "decided").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryInsertClaimEvent)).
		WithArgs("C-1", "0.0.3@2", "claim_decision", "2026-02-08T12:00:01Z", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := adapter.AppendEvent(context.Background(), storage.ClaimRecord{
		ClaimID: "C-1", CustomerID: "cust-1", TopicID: "0.0.5", Status: v1.StatusDecided,
	}, evt)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetClaim(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetClaim)).
		WithArgs("C-1").
		WillReturnRows(sqlmock.NewRows([]string{"claim_id", "customer_id", "topic_id", "status"}).
			AddRow("C-1", "cust-1", "0.0.5", "extracted"))
	mock.ExpectQuery(regexp.QuoteMeta(queryListClaimEvents)).
		WithArgs("C-1").
		WillReturnRows(sqlmock.NewRows(eventRowColumns()).
			AddRow("0.0.1@1", "2026-02-08T12:00:00Z", "claim_submitted", []byte(`{"claim_id":"C-1","customer_id":"cust-1","documents":[],"ipfs_cids":[]}`)).
			AddRow("0.0.2@2", "2026-02-08T12:00:05Z", "claim_extracted", []byte(`{"claim_id":"C-1","customer_id":"cust-1","extracted":{"AgeOfVehicle":3}}`)))

	c, err := adapter.GetClaim(context.Background(), "C-1")
	require.NoError(t, err)
	require.Equal(t, v1.StatusExtracted, c.Status)
	require.Len(t, c.Events, 2)
	require.IsType(t, &v1.SubmittedPayload{}, c.Events[0].Payload)

	extracted, ok := c.Events[1].Payload.(*v1.ExtractedPayload)
	require.True(t, ok)
	require.Equal(t, float64(3), extracted.Extracted["AgeOfVehicle"])
	require.NoError(t, c.Validate())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetClaimNotFound(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetClaim)).
		WithArgs("C-404").
		WillReturnRows(sqlmock.NewRows([]string{"claim_id", "customer_id", "topic_id", "status"}))

	_, err := adapter.GetClaim(context.Background(), "C-404")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_RegisterTopic(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryRegisterTopic)).
		WithArgs("0.0.77").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryRegisterTopic)).
		WithArgs("0.0.77").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := adapter.RegisterTopic(context.Background(), "0.0.77")
	require.NoError(t, err)
	require.True(t, created)

	created, err = adapter.RegisterTopic(context.Background(), "0.0.77")
	require.NoError(t, err)
	require.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ListClaimsByCustomer(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryListClaimsByCustomer)).
		WithArgs("cust-1").
		WillReturnRows(sqlmock.NewRows([]string{"claim_id", "customer_id", "status"}).
			AddRow("C-1", "cust-1", "decided").
			AddRow("C-2", "cust-1", "submitted"))

	claims, err := adapter.ListClaimsByCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Equal(t, []v1.ClaimSummary{
		{ClaimID: "C-1", CustomerID: "cust-1", Status: v1.StatusDecided},
		{ClaimID: "C-2", CustomerID: "cust-1", Status: v1.StatusSubmitted},
	}, claims)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CloseReturnsDBError(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	dbCloseErr := errors.New("close failed")
	mock.ExpectClose().WillReturnError(dbCloseErr)

	err := adapter.Close()
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to close database")
	require.ErrorIs(t, err, dbCloseErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := &Adapter{
		db:                  db,
		stmtRegisterTopic:   mustPrepareStmt(t, db, mock, queryRegisterTopic),
		stmtGetClaim:        mustPrepareStmt(t, db, mock, queryGetClaim),
		stmtListClaimEvents: mustPrepareStmt(t, db, mock, queryListClaimEvents),
		stmtListByCustomer:  mustPrepareStmt(t, db, mock, queryListClaimsByCustomer),
	}

	return adapter, mock, db
}

func mustPrepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, query string) *sql.Stmt {
	t.Helper()

	mock.ExpectPrepare(regexp.QuoteMeta(query))
	stmt, err := db.Prepare(query)
	require.NoError(t, err)

	return stmt
}

func eventRowColumns() []string {
	return []string{
		"transaction_id",
		"event_timestamp",
		"event_type",
		"payload",
	}
}
