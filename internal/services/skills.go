package services

import (
	"strings"
)

// commonSkills is the static dictionary the resume parser matches against,
// in addition to whatever skills appear on stored job descriptions.
var commonSkills = []string{
	// Programming languages
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust",
	"Ruby", "PHP", "Swift", "Kotlin", "Scala", "R", "MATLAB", "SQL", "HTML", "CSS",
	// Frameworks and libraries
	"React", "Angular", "Vue.js", "Node.js", "Express.js", "Django", "Flask",
	"FastAPI", "Spring Boot", "Laravel", "ASP.NET", "Next.js", "Svelte",
	// Databases
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Cassandra", "Elasticsearch",
	// Cloud and DevOps
	"AWS", "Azure", "Google Cloud Platform", "Docker", "Kubernetes", "Jenkins",
	"CI/CD", "Terraform", "Ansible",
	// Tools and practices
	"Git", "Linux", "Agile", "Scrum", "JIRA", "GraphQL", "REST API",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch",
}

// skillSynonyms folds common shorthand to a canonical spelling so that
// "js" on a resume matches "JavaScript" on a job description.
var skillSynonyms = map[string]string{
	"js":                  "JavaScript",
	"javascript":          "JavaScript",
	"ts":                  "TypeScript",
	"typescript":          "TypeScript",
	"py":                  "Python",
	"python":              "Python",
	"golang":              "Go",
	"react.js":            "React",
	"reactjs":             "React",
	"node":                "Node.js",
	"nodejs":              "Node.js",
	"node.js":             "Node.js",
	"vue":                 "Vue.js",
	"vuejs":               "Vue.js",
	"vue.js":              "Vue.js",
	"angularjs":           "Angular",
	"angular.js":          "Angular",
	"express":             "Express.js",
	"expressjs":           "Express.js",
	"express.js":          "Express.js",
	"spring":              "Spring Boot",
	"springboot":          "Spring Boot",
	"spring boot":         "Spring Boot",
	"postgres":            "PostgreSQL",
	"postgresql":          "PostgreSQL",
	"mongo":               "MongoDB",
	"mongodb":             "MongoDB",
	"aws":                 "AWS",
	"amazon web services": "AWS",
	"gcp":                 "Google Cloud Platform",
	"google cloud":        "Google Cloud Platform",
	"k8s":                 "Kubernetes",
	"kubernetes":          "Kubernetes",
	"ml":                  "Machine Learning",
	"machine learning":    "Machine Learning",
	"dl":                  "Deep Learning",
	"deep learning":       "Deep Learning",
	"tf":                  "TensorFlow",
	"tensorflow":          "TensorFlow",
	"rest":                "REST API",
	"restful":             "REST API",
	"rest api":            "REST API",
	"rest apis":           "REST API",
	"ci/cd":               "CI/CD",
	"cicd":                "CI/CD",
	"csharp":              "C#",
	"cpp":                 "C++",
	"shell":               "Shell Scripting",
	"bash":                "Bash",
}

// NormalizeSkill maps a raw skill string to its canonical form when a
// synonym is known, otherwise returns the trimmed original.
func NormalizeSkill(skill string) string {
	trimmed := strings.TrimSpace(skill)
	if canonical, ok := skillSynonyms[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// foldSkill lowers case and folds punctuation and whitespace so that
// "Node.JS" and "node js" compare equal.
func foldSkill(skill string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(skill)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#':
			b.WriteRune(r)
		}
	}
	return b.String()
}
