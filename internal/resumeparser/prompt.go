package resumeparser

import "fmt"

const parserSystemPrompt = "You are a precise resume parser that returns only valid JSON."

func buildParsePrompt(rawText string) string {
	return fmt.Sprintf(`
You are a resume parser. Parse the following resume text and extract structured information in JSON format.

Extract the following information:
1. contact_info: name, email, phone, location, linkedin, github
2. skills: array of technical and soft skills mentioned
3. experience: array of work experiences with company, position, start_date, end_date, description, skills_used
4. education: array of educational background with institution, degree, field_of_study, graduation_date
5. summary: brief professional summary or objective (if present)

Important guidelines:
- For dates, use formats like "2020-01", "2023-12", or "2023" if only year is available
- If a field is not found, use null or empty array as appropriate
- Extract skills mentioned throughout the resume, not just from a skills section
- For skills_used in experience, extract relevant technical skills for each role
- Keep descriptions concise but informative
- If current job, use null for end_date

Resume text:
%s

Return only valid JSON in this exact format:
{
  "contact_info": {
    "name": "string or null",
    "email": "string or null",
    "phone": "string or null",
    "location": "string or null",
    "linkedin": "string or null",
    "github": "string or null"
  },
  "skills": ["skill1", "skill2", ...],
  "experience": [
    {
      "company": "string",
      "position": "string",
      "start_date": "YYYY-MM or YYYY or null",
      "end_date": "YYYY-MM or YYYY or null",
      "description": "string or null",
      "skills_used": ["skill1", "skill2", ...]
    }
  ],
  "education": [
    {
      "institution": "string",
      "degree": "string",
      "field_of_study": "string or null",
      "graduation_date": "YYYY-MM or YYYY or null"
    }
  ],
  "summary": "string or null"
}
`, rawText)
}
