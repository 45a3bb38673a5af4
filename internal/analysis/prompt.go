package analysis

import (
	"fmt"
	"strings"

	"codeberg.org/skillsage/server/skillsage/submissions"
)

func summaryPrompt(answers []submissions.QuestionSubmission) string {
	var b strings.Builder

	b.WriteString("You are a coding interview evaluator. A candidate has submitted code solutions to several questions.\n")
	b.WriteString("For each question you are given its text, the programming language used and the candidate's code.\n")
	b.WriteString("Analyze the overall quality of the submissions and write a recruiter-friendly summary.\n\n")

	for _, qs := range answers {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "Question: %s\n", qs.QuestionTitle)
		fmt.Fprintf(&b, "Question Detail: %s\n", qs.QuestionDescription)
		fmt.Fprintf(&b, "Language: %s\n", qs.Language)
		b.WriteString("Candidate's Code:\n```\n")
		b.WriteString(qs.Code)
		b.WriteString("\n```\n---\n\n")
	}

	b.WriteString("Now provide:\n")
	b.WriteString("1. A summary of the candidate's overall performance, coding quality and problem-solving approach.\n")
	b.WriteString("2. A star rating from 1 to 4:\n")
	b.WriteString("   - ⭐ poor, unclear or unfinished code\n")
	b.WriteString("   - ⭐⭐ basic or brute-force logic that makes sense\n")
	b.WriteString("   - ⭐⭐⭐ good, readable, close to optimal\n")
	b.WriteString("   - ⭐⭐⭐⭐ excellent, clean and optimal\n\n")
	b.WriteString("Respond with JSON only, in this shape:\n")
	b.WriteString("{\n  \"content\": \"Your summary here...\",\n  \"rating\": \"3/4 ⭐⭐⭐\"\n}")

	return b.String()
}

const complexityPrompt = `You are a software engineering evaluator.

A candidate attempted the coding problem below. Analyze the time and space complexity of their solution in Big-O notation.

Problem Title:
%s

Problem Description:
%s

Language:
%s

Candidate's Code:
` + "```" + `
%s
` + "```" + `

Respond with JSON only, in this shape:
{
  "timeComplexity": "O(n log n)",
  "spaceComplexity": "O(n)"
}`

const qualityPrompt = `You are a senior coding evaluator. Analyze a candidate's code submission for a programming question and give clear, professional feedback for a recruiter.

Write one paragraph of 4 to 6 sentences covering correctness, time and space complexity where relevant, readability and structure, edge case handling, and any notable issues or possible improvements.
The paragraph must be understandable to a non-technical recruiter while still supporting a hiring decision. Do not use markdown.

Question Title: %s
Question: %s
Language: %s
Submission Code:
%s`

const questionPrompt = `You are an experienced technical interviewer. Write one coding interview question based on this request:

%s

The description must state the task, the input and output format, the constraints and at least one example.
Respond with JSON only, in this shape:
{
  "title": "Short title",
  "description": "Full problem statement",
  "programmingLanguage": "Suggested language"
}`
