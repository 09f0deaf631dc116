package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt creates the prompt that screens one resume against the job description
func (pb *PromptBuilder) BuildScreeningPrompt(jobDescription, resumeText string) string {
	return fmt.Sprintf(`
You are a Recruitment Assistant AI.

Here is the Job Description for a Marketing Intern role:

%s

Here is a candidate's resume text:

%s

Please:
1. Check if the candidate meets all basic qualifications:
   - Currently enrolled as a full-time undergraduate
   - Eligible to work in the U.S.
   - Available in the U.S. for the internship period
   - GPA 3.0 or higher
   - Willing to relocate if necessary

2. Evaluate the preferred qualifications:
   - Communication skills
   - Familiarity with marketing tools (Canva, Mailchimp, Google Analytics)
   - Interest in marketing, communications, or business
   - Teamwork and growth mindset

3. For this candidate, provide:
- Basic qualifications met? Yes/No and why
- Preferred qualifications summary
- Match score (0-100%%)
- Strengths and gaps summary
- Recommendation: Strong Match / Partial Match / Not a Match

Format response as JSON with keys:
basic_qualified, preferred_qualifications, match_score, summary, recommendation
`, jobDescription, resumeText)
}
