package postgres

// SQL queries for the claim ledger tables.

const (
	// queryRegisterTopic adds a topic id. ON CONFLICT DO NOTHING reports zero
	// rows affected for an id that is already registered.
	queryRegisterTopic = `
		INSERT INTO topics (topic_id)
		VALUES ($1)
		ON CONFLICT (topic_id) DO NOTHING
	`

	queryGetClaim = `
		SELECT claim_id, customer_id, topic_id, status
		FROM claims
		WHERE claim_id = $1
	`

	// queryListClaimEvents returns one claim's history in append order.
	queryListClaimEvents = `
		SELECT transaction_id, event_timestamp, event_type, payload
		FROM claim_events
		WHERE claim_id = $1
		ORDER BY event_seq ASC
	`

	// queryListClaimsByCustomer keeps first-creation order: created_seq is
	// not touched by upserts.
	queryListClaimsByCustomer = `
		SELECT claim_id, customer_id, status
		FROM claims
		WHERE customer_id = $1
		ORDER BY created_seq ASC
	`

	// queryReplaceClaimHeader overwrites the whole header on conflict.
	queryReplaceClaimHeader = `
		INSERT INTO claims (claim_id, customer_id, topic_id, status, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (claim_id) DO UPDATE
		SET customer_id = EXCLUDED.customer_id,
		    topic_id = EXCLUDED.topic_id,
		    status = EXCLUDED.status,
		    updated_at = NOW()
	`

	// queryAppendClaimHeader only moves the status of an existing claim;
	// customer_id and topic_id stay as first written.
	queryAppendClaimHeader = `
		INSERT INTO claims (claim_id, customer_id, topic_id, status, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (claim_id) DO UPDATE
		SET status = EXCLUDED.status,
		    updated_at = NOW()
	`

	queryDeleteClaimEvents = `
		DELETE FROM claim_events
		WHERE claim_id = $1
	`

	queryInsertClaimEvent = `
		INSERT INTO claim_events (
			claim_id, transaction_id, event_type, event_timestamp, payload
		)
		VALUES ($1, $2, $3, $4, $5)
	`
)
