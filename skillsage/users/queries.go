package users

const userColumns = `id, first_name, last_name, email, mobile_number, password_hash, role, created_at, updated_at`

const (
	queryCreate = `
		INSERT INTO users (first_name, last_name, email, mobile_number, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryFindByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	queryUpdatePassword = `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE email = $2
	`

	queryUpdateProfile = `
		UPDATE users
		SET first_name = $1, last_name = $2, mobile_number = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns

	// the no-op update makes RETURNING yield the existing row on conflict
	queryFindOrCreateByEmail = `
		INSERT INTO users (first_name, last_name, email, mobile_number, password_hash, role)
		VALUES ($1, $2, $3, '', $4, $5)
		ON CONFLICT (email)
		DO UPDATE SET email = EXCLUDED.email
		RETURNING ` + userColumns
)
