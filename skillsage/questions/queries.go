package questions

const questionColumns = `id, title, description, language, created_by, created_at, updated_at`

const (
	queryCreate = `
		INSERT INTO questions (title, description, language, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + questionColumns

	queryFindByID = `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE id = $1
	`

	queryCountExisting = `
		SELECT COUNT(*)
		FROM questions
		WHERE id = ANY($1::uuid[])
	`

	queryList = `
		SELECT ` + questionColumns + `
		FROM questions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	queryCount = `
		SELECT COUNT(*) FROM questions
	`

	queryUpdate = `
		UPDATE questions
		SET title = $1, description = $2, language = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + questionColumns

	queryDelete = `
		DELETE FROM questions
		WHERE id = $1
	`
)
