package feedback

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/skillsage/server/internal/errors"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("unexpected destination %T", d)
		}
	}

	return nil
}

func TestScanLatest(t *testing.T) {
	created := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)

	f, err := scanLatest(fakeRow{values: []any{"fb-1", "Strong on data structures", 4, "iv-1", "cand-1", "cand@example.com", created}})
	require.NoError(t, err)
	assert.Equal(t, &Feedback{
		ID:             "fb-1",
		Content:        "Strong on data structures",
		Rating:         4,
		InterviewID:    "iv-1",
		CandidateID:    "cand-1",
		CandidateEmail: "cand@example.com",
		CreatedAt:      created,
	}, f)
}

func TestScanLatest_NoRows(t *testing.T) {
	_, err := scanLatest(fakeRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, ErrFeedbackNotFound)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	boom := fmt.Errorf("connection reset")
	_, err = scanLatest(fakeRow{err: boom})
	assert.Equal(t, boom, err)
}

func TestQueries(t *testing.T) {
	latest := strings.Join(strings.Fields(queryLatest), " ")
	assert.Contains(t, latest, "WHERE f.interview_id = $1")
	assert.Contains(t, latest, "ORDER BY f.created_at DESC LIMIT 1")

	create := strings.Join(strings.Fields(queryCreate), " ")
	assert.Contains(t, create, "INSERT INTO feedbacks (interview_id, candidate_id, author_id, content, rating)")
	assert.Contains(t, create, "JOIN users u ON u.id = i.candidate_id")
}
