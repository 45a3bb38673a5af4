package submissions

const (
	queryCreateSubmission = `
		INSERT INTO interview_submissions (interview_id, candidate_id)
		VALUES ($1, $2)
		RETURNING id, submitted_at
	`

	queryCreateAnswer = `
		INSERT INTO question_submissions (submission_id, question_id, code, language, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`

	queryCompleteInterview = `
		UPDATE interviews
		SET status = 'COMPLETED', updated_at = NOW()
		WHERE id = $1
	`

	queryStoreMessage = `
		INSERT INTO chat_messages (interview_id, sender_name, content)
		VALUES ($1, $2, $3)
	`

	queryFindByInterview = `
		SELECT s.id, s.interview_id, s.candidate_id, u.email, s.submitted_at
		FROM interview_submissions s
		JOIN users u ON u.id = s.candidate_id
		WHERE s.interview_id = $1
	`

	// answers follow the question order of the interview
	queryAnswers = `
		SELECT qs.id, qs.question_id, q.title, q.description, qs.code, qs.language, qs.status, qs.submitted_at
		FROM question_submissions qs
		JOIN interview_submissions s ON s.id = qs.submission_id
		JOIN questions q ON q.id = qs.question_id
		LEFT JOIN interview_questions iq ON iq.interview_id = s.interview_id AND iq.question_id = qs.question_id
		WHERE qs.submission_id = $1
		ORDER BY COALESCE(iq.position, 2147483647), qs.submitted_at, qs.id
	`

	queryStoredAnswers = `
		SELECT s.interview_id, s.candidate_id, qs.question_id, qs.code
		FROM question_submissions qs
		JOIN interview_submissions s ON s.id = qs.submission_id
		WHERE ($1 = '' OR s.interview_id = NULLIF($1, '')::uuid)
		ORDER BY qs.submitted_at
	`
)
