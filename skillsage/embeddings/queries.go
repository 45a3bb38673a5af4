package embeddings

const (
	queryInsert = `
		INSERT INTO code_embeddings (question_id, candidate_id, interview_id, embedding, fingerprint)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5)
		RETURNING id, submitted_at
	`

	queryDeleteForCandidate = `
		DELETE FROM code_embeddings
		WHERE question_id = $1 AND candidate_id = $2
	`

	// <=> is pgvector's cosine distance operator
	queryFindNearest = `
		SELECT candidate_id, interview_id, embedding::text, fingerprint, embedding <=> $3 AS distance
		FROM code_embeddings
		WHERE question_id = $1 AND candidate_id <> $2
		ORDER BY embedding <=> $3
		LIMIT $4
	`
)
