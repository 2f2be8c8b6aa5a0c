package advisor

import (
	"fmt"
	"strings"
)

const solutionSystemPrompt = `You are an expert programming instructor. Evaluate the student's code solution against the problem requirements.

Provide feedback in JSON format with:
- isCorrect: boolean (true if solution meets requirements)
- score: number (0-100 based on correctness, efficiency, and code quality)
- feedback: string (detailed explanation of strengths/weaknesses)
- suggestions: array of strings (specific improvement recommendations)

Consider: correctness, efficiency, readability, best practices, and edge cases.`

const guidanceSystemPrompt = `You are a career guidance expert. Create a personalized learning roadmap for students.

Provide response in JSON format with:
- roadmap: array of learning steps in order
- suggestedSkills: array of skills to learn next
- timelineWeeks: estimated weeks to reach target role
- resources: array of specific learning resource types`

func buildSolutionPrompt(in SolutionCheckInput) string {
	return fmt.Sprintf("Problem: %s\n\nExpected behavior: %s\n\nDifficulty: %s\n\nStudent's solution:\n```\n%s\n```\n\nPlease evaluate this solution and respond with JSON only.",
		in.ProblemStatement, in.ExpectedOutput, in.Difficulty, in.Solution)
}

func buildGuidancePrompt(in CareerGuidanceInput) string {
	return fmt.Sprintf("Current skills: %s\nTarget job role: %s\nCurrent level: %s\n\nCreate a practical learning roadmap to reach the target role.",
		strings.Join(in.CurrentSkills, ", "), in.TargetJobRole, in.CurrentLevel)
}
