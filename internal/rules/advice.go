package rules

const (
	defaultDescription    = "Security vulnerability detected in the code."
	defaultRecommendation = "Review and fix the identified security issue."
)

// Advice is the human-readable explanation attached to every finding of a category.
type Advice struct {
	Description    string `yaml:"description" json:"description"`
	Recommendation string `yaml:"recommendation" json:"recommendation"`
}

var builtinAdvice = map[string]Advice{
	CategorySQLInjection: {
		Description:    "Direct concatenation of user input in SQL queries can lead to SQL injection attacks.",
		Recommendation: "Use parameterized queries or prepared statements instead of string concatenation.",
	},
	CategoryXSS: {
		Description:    "Unsanitized user input being rendered in HTML can lead to cross-site scripting attacks.",
		Recommendation: "Sanitize user input and use textContent instead of innerHTML when possible.",
	},
	CategoryCodeInjection: {
		Description:    "Evaluating strings as code lets attacker-controlled input run with the page's privileges.",
		Recommendation: "Remove eval and parse data with JSON.parse or an explicit dispatcher.",
	},
	CategoryCommandInjection: {
		Description:    "User input being passed to system commands can lead to command injection attacks.",
		Recommendation: "Avoid passing user input directly to system commands. Use whitelisting and validation.",
	},
	CategoryHardcodedSecret: {
		Description:    "Sensitive information like passwords or API keys should not be hardcoded in source code.",
		Recommendation: "Use environment variables or secure secret management systems.",
	},
	CategoryInsecureRandom: {
		Description:    "Math.random() is not cryptographically secure. Use crypto.randomBytes() for security-sensitive operations.",
		Recommendation: "Use crypto.randomBytes() or crypto.getRandomValues() for cryptographic operations.",
	},
	CategoryRandomUsage: {
		Description:    "Random bytes are generated here; confirm the output is used with adequate length and encoding.",
		Recommendation: "Keep secrets generated from crypto.randomBytes() at 16 bytes or more and never log them.",
	},
	CategoryDeprecatedFunction: {
		Description:    "This function is deprecated and may have security implications.",
		Recommendation: "Replace with modern alternatives that provide better security.",
	},
	CategoryDangerousAssignment: {
		Description:    "Assigning markup directly to the DOM bypasses the browser's escaping.",
		Recommendation: "Build nodes with createElement and textContent, or sanitize the markup first.",
	},
	CategoryStringTimeout: {
		Description:    "Passing a string to setTimeout evaluates it as code.",
		Recommendation: "Pass a function reference to setTimeout instead of a string.",
	},
	CategoryInputValidation: {
		Description:    "User input should be validated and sanitized before use.",
		Recommendation: "Implement proper input validation and sanitization.",
	},
	CategoryFileSystem: {
		Description:    "File system operations should be carefully controlled to prevent unauthorized access.",
		Recommendation: "Validate file paths and implement proper access controls.",
	},
	CategoryMemoryManagement: {
		Description:    "Potential memory leak or inefficient memory usage detected.",
		Recommendation: "Review object lifecycle and ensure proper cleanup.",
	},
	CategoryCodeQuality: {
		Description:    "Code quality issue that may impact maintainability or performance.",
		Recommendation: "Follow best practices and coding standards.",
	},
}

// DefaultAdvice is returned for categories without an entry.
func DefaultAdvice() Advice {
	return Advice{Description: defaultDescription, Recommendation: defaultRecommendation}
}
