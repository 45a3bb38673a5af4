package plagiarism

import "fmt"

const highSimilarityPrompt = `You are assisting a technical recruiter.
The candidate's answer to the coding question "%s" has a cosine similarity of %.2f%% with an answer previously submitted by a different candidate.
Write a short report of 3 to 4 sentences explaining that this similarity is unusually high and may indicate plagiarism, and suggest what the recruiter could ask the candidate to confirm authorship.
Answer in plain text without markdown.`

const originalWorkPrompt = `You are assisting a technical recruiter.
The candidate's answer to the coding question "%s" has a highest cosine similarity of %.2f%% with answers previously submitted by other candidates.
Write a short report of 2 to 3 sentences stating that the answer appears to be the candidate's original work.
Answer in plain text without markdown.`

func reportPrompt(questionName string, similarity float64, plagiarized bool) string {
	if plagiarized {
		return fmt.Sprintf(highSimilarityPrompt, questionName, similarity)
	}

	return fmt.Sprintf(originalWorkPrompt, questionName, similarity)
}

// used when the report model is unavailable so the numbers are still shown
func fallbackReport(questionName string, similarity float64, plagiarized bool) string {
	if plagiarized {
		return fmt.Sprintf("The answer to %q is %.2f%% similar to a previous submission from another candidate and may be plagiarized.", questionName, similarity)
	}

	return fmt.Sprintf("The answer to %q is at most %.2f%% similar to previous submissions and appears to be original work.", questionName, similarity)
}
