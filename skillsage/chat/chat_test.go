package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertBatch_Empty(t *testing.T) {
	r := &Repository{}
	assert.NoError(t, r.InsertBatch(context.Background(), nil))
}

func TestQueries(t *testing.T) {
	insert := strings.Join(strings.Fields(queryInsert), " ")

	// buffered ids are kept so a retried flush does not duplicate rows
	assert.Contains(t, insert, "COALESCE(NULLIF($1, '')::uuid, gen_random_uuid())")
	assert.Contains(t, insert, "ON CONFLICT (id) DO NOTHING")
	assert.Contains(t, insert, "NULLIF($3, '')::uuid")

	recent := strings.Join(strings.Fields(queryRecent), " ")
	assert.Contains(t, recent, "WHERE interview_id = $1 ORDER BY sent_at DESC LIMIT $2")
}
