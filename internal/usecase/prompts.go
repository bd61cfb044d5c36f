package usecase

import "fmt"

const analysisPrompt = `Analyze the current job market trends and identify emerging skills gaps in %s%s.
  Provide deep, actionable insights.
  Please structure your response as a JSON object with two keys: "jobTrends" and "skillsGaps".
  For "jobTrends", provide an array of 3-5 objects, each with "trendName" (string) and "trendDescription" (string, detailed 2-3 sentences).
  For "skillsGaps", provide an array of 3-5 objects, each with "skillName" (string) and "gapExplanation" (string, detailed 2-3 sentences explaining why it's a gap and its importance).
  Example for "jobTrends": [{"trendName": "Advanced AI & ML Specialization", "trendDescription": "Businesses are moving beyond basic AI applications to specialized machine learning models for predictive analytics, natural language processing, and computer vision. This requires a deeper understanding of algorithms and model deployment."}]
  Example for "skillsGaps": [{"skillName": "Cybersecurity for IoT and Edge Computing", "gapExplanation": "As IoT devices and edge computing proliferate, securing these distributed systems becomes critical. There's a growing gap for professionals who can design and implement robust security protocols for these new architectures."}]
  Ensure the language is professional, insightful, and suitable for career planning.`

// %[1]s is the community, %[2]s the skill.
const pathwaysPrompt = `For an individual in %[1]s looking to acquire skills in "%[2]s", provide personalized and practical learning pathway suggestions.
  Structure your response as a JSON object with three keys: "onlineCourses", "mentorshipPrograms", and "apprenticeships".
  For "onlineCourses", provide an array of 2-3 objects, each with "courseName" (string), "platform" (string, e.g., Coursera, edX, Udemy, Pluralsight, or "Specialized Provider"), and "description" (string, 2-3 sentences highlighting key learnings and benefits).
  For "mentorshipPrograms", provide an array of 1-2 objects, each with "programIdea" (string, e.g., "Engage with local tech meetups for mentorship opportunities") and "details" (string, 2-3 sentences on how to approach this and what to expect).
  For "apprenticeships", provide an array of 1-2 objects, each with "apprenticeshipType" (string, e.g., "Structured Corporate Apprenticeships in %[2]s") and "howToFind" (string, 2-3 sentences on specific search strategies or platforms).
  Example for "onlineCourses": [{"courseName": "Advanced %[2]s Bootcamp", "platform": "Udemy", "description": "A hands-on bootcamp covering advanced techniques in %[2]s, project-based learning, and real-world case studies. Ideal for skill specialization."}]
  Keep suggestions highly actionable and relevant to current industry standards.`

// %[1]s is the community, %[2]s the skill.
const employersPrompt = `For someone in %[1]s with demonstrated skills in "%[2]s", identify 2-3 types of local or relevant remote employers and industries that are likely hiring.
  Structure your response as a JSON object with a key "employerSuggestions".
  "employerSuggestions" should be an array of objects, each with "sectorOrCompanyType" (string) and "reasoning" (string, 2-3 sentences detailing why they hire for this skill and potentially what roles to look for).
  Example: [{"sectorOrCompanyType": "Emerging FinTech Companies in %[1]s", "reasoning": "FinTech startups are rapidly adopting %[2]s for fraud detection and personalized financial services. They often seek %[2]s analysts and engineers."}]
  Focus on providing specific and actionable insights for job seekers.`

// AnalysisPrompt builds the job market analysis prompt. area is optional.
func AnalysisPrompt(community, area string) string {
	focus := ""
	if area != "" {
		focus = " focusing on " + area
	}
	return fmt.Sprintf(analysisPrompt, community, focus)
}

// PathwaysPrompt builds the learning pathways prompt for skill.
func PathwaysPrompt(community, skill string) string {
	return fmt.Sprintf(pathwaysPrompt, community, skill)
}

// EmployersPrompt builds the employer suggestions prompt for skill.
func EmployersPrompt(community, skill string) string {
	return fmt.Sprintf(employersPrompt, community, skill)
}
