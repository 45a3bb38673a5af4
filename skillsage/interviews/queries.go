package interviews

const interviewSelect = `
	SELECT i.id, i.title, i.description, i.start_time, i.end_time, i.duration_minutes,
	       i.status, i.created_at, i.updated_at,
	       r.id, r.first_name, r.last_name, r.email,
	       c.id, c.first_name, c.last_name, c.email
	FROM interviews i
	JOIN users r ON r.id = i.recruiter_id
	JOIN users c ON c.id = i.candidate_id
`

const (
	queryCreate = `
		INSERT INTO interviews (title, description, start_time, end_time, duration_minutes, status, recruiter_id, candidate_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	queryLinkQuestion = `
		INSERT INTO interview_questions (interview_id, question_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`

	queryFindByID = interviewSelect + `
		WHERE i.id = $1
	`

	queryListForRecruiter = interviewSelect + `
		WHERE i.recruiter_id = $1
		ORDER BY i.start_time DESC
	`

	queryListForCandidate = interviewSelect + `
		WHERE i.candidate_id = $1
		ORDER BY i.start_time DESC
	`

	queryQuestions = `
		SELECT q.id, q.title, q.description, q.language, q.created_by, q.created_at, q.updated_at
		FROM interview_questions iq
		JOIN questions q ON q.id = iq.question_id
		WHERE iq.interview_id = $1
		ORDER BY iq.position
	`

	queryUpdate = `
		UPDATE interviews
		SET title = $1, description = $2, start_time = $3, end_time = $4, duration_minutes = $5, updated_at = NOW()
		WHERE id = $6
	`

	queryDelete = `
		DELETE FROM interviews
		WHERE id = $1
	`

	queryStartIfScheduled = `
		UPDATE interviews
		SET status = 'IN_PROGRESS', updated_at = NOW()
		WHERE id = $1 AND status = 'SCHEDULED'
	`

	queryListOverdue = `
		SELECT id, title, end_time
		FROM interviews
		WHERE status IN ('SCHEDULED', 'IN_PROGRESS') AND end_time < $1
		ORDER BY end_time
		LIMIT 100
	`

	queryExpire = `
		UPDATE interviews
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE id = $1 AND status IN ('SCHEDULED', 'IN_PROGRESS')
	`
)
