package rules

import "regexp"

// Categories produced by the built-in catalog.
const (
	CategorySQLInjection        = "SQL Injection"
	CategoryXSS                 = "XSS"
	CategoryCodeInjection       = "Code Injection"
	CategoryCommandInjection    = "Command Injection"
	CategoryHardcodedSecret     = "Hardcoded Secret"
	CategoryInsecureRandom      = "Insecure Random"
	CategoryRandomUsage         = "Random Usage"
	CategoryDeprecatedFunction  = "Deprecated Function"
	CategoryDangerousAssignment = "Dangerous Assignment"
	CategoryStringTimeout       = "String-based setTimeout"
	CategoryInputValidation     = "Input Validation"
	CategoryFileSystem          = "File System"
	CategoryMemoryManagement    = "Memory Management"
	CategoryCodeQuality         = "Code Quality"
)

// Built-in set names, in catalog order.
const (
	SetInjection  = "injection"
	SetXSS        = "xss"
	SetCommand    = "command"
	SetSecrets    = "secrets"
	SetRandomness = "randomness"
	SetDeprecated = "deprecated"
	SetValidation = "validation"
	SetFilesystem = "filesystem"
)

// quote matches any of the three JavaScript string delimiters.
const quote = "['\"`]"

var defaultCatalog *Catalog

func init() {
	c, err := NewCatalog(builtinSets()...)
	if err != nil {
		panic("rules: invalid built-in catalog: " + err.Error())
	}
	defaultCatalog = c
}

// Default returns the built-in catalog. It is built once and shared.
func Default() *Catalog {
	return defaultCatalog
}

func rule(id, category string, sev Severity, pattern string) Rule {
	return Rule{ID: id, Category: category, Severity: sev, Pattern: regexp.MustCompile(pattern)}
}

func secretRule(name string) Rule {
	return rule("secrets."+name, CategoryHardcodedSecret, High,
		name+`\s*=\s*`+quote+"[^'\"`]+"+quote)
}

func builtinSets() []Set {
	return []Set{
		{Name: SetInjection, Rules: []Rule{
			rule("injection.query-template", CategorySQLInjection, High, `query\s*\(\s*`+quote+`.*\$`),
			rule("injection.execute-template", CategorySQLInjection, High, `execute\s*\(\s*`+quote+`.*\$`),
			rule("injection.query-concat", CategorySQLInjection, Medium, `\.query\s*\(\s*`+quote+`.*\+`),
		}},
		{Name: SetXSS, Rules: []Rule{
			rule("xss.inner-html", CategoryXSS, High, `innerHTML\s*=`),
			rule("xss.outer-html", CategoryXSS, High, `outerHTML\s*=`),
			rule("xss.document-write", CategoryXSS, High, `document\.write\s*\(`),
			rule("xss.eval", CategoryCodeInjection, Critical, `eval\s*\(`),
		}},
		{Name: SetCommand, Rules: []Rule{
			rule("command.exec", CategoryCommandInjection, Critical, `exec\s*\(`),
			rule("command.spawn", CategoryCommandInjection, High, `spawn\s*\(`),
			rule("command.child-process", CategoryCommandInjection, Medium, `child_process`),
		}},
		{Name: SetSecrets, Rules: []Rule{
			secretRule("password"),
			secretRule("api_key"),
			secretRule("secret"),
			secretRule("token"),
		}},
		{Name: SetRandomness, Rules: []Rule{
			rule("randomness.math-random", CategoryInsecureRandom, Medium, `Math\.random\s*\(`),
			rule("randomness.random-bytes", CategoryRandomUsage, Low, `crypto\.randomBytes`),
		}},
		{Name: SetDeprecated, Rules: []Rule{
			rule("deprecated.document-write", CategoryDeprecatedFunction, Medium, `document\.write\s*\(`),
			rule("deprecated.inner-html", CategoryDangerousAssignment, Medium, `innerHTML\s*=`),
			rule("deprecated.string-timeout", CategoryStringTimeout, Low, `setTimeout\s*\(\s*`+quote),
		}},
		{Name: SetValidation, Rules: []Rule{
			rule("validation.inner-html", CategoryInputValidation, High, `\.innerHTML\s*=`),
			rule("validation.outer-html", CategoryInputValidation, High, `\.outerHTML\s*=`),
		}},
		{Name: SetFilesystem, Rules: []Rule{
			rule("filesystem.read-sync", CategoryFileSystem, Medium, `fs\.readFileSync\s*\(`),
			rule("filesystem.write-sync", CategoryFileSystem, Medium, `fs\.writeFileSync\s*\(`),
		}},
	}
}
