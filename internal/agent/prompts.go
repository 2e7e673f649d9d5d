package agent

// CommitSystemPrompt is the system message for commit message generation
const CommitSystemPrompt = "You are a helpful assistant that generates git commit messages."

// CommitUserPrompt is the template for the commit message request
const CommitUserPrompt = `Please could you write a commit message for my changes.
Only respond with the commit message. Don't give any notes.
Explain what were the changes and why the changes were done.
Focus the most important changes.
Use the present tense.
Use a semantic commit prefix.
Hard wrap lines at 72 characters.
Ensure the title is only {{.MaxHeaderLength}} characters.
Do not start any lines with the hash symbol.
{{- if .Brief}}
Use brief, concise language.
{{- end}}
{{- if .Emoji}}
Include relevant emoji at the start of the title, after the semantic prefix.
{{- end}}
{{- if .Language}}
Write the message in {{.Language}}, but keep the semantic prefix in English.
{{- end}}

Available semantic prefixes: {{.Types}}
Max header length: {{.MaxHeaderLength}}
Scope: {{if .Scope}}{{.Scope}}{{else}}not specified{{end}}

Here is my git diff:
` + "```" + `
{{.Diff}}
` + "```"

// PRSystemPrompt is the system message for pull request generation
const PRSystemPrompt = "You are a helpful assistant that writes pull request titles and descriptions."

// PRUserPrompt is the template for the pull request request
const PRUserPrompt = `Generate a Pull Request title and description based on the following template:

Title format: {{.TitleFormat}}
Required sections: {{.Sections}}
{{- if .Brief}}
Use brief, concise language.
{{- end}}
{{- if .Language}}
Write the title and description in {{.Language}}.
{{- end}}

Respond in exactly this format:
TITLE: <the pull request title>
DESCRIPTION:
<the description in markdown, one heading per required section>
{{if .Source}}
Branches: {{.Source}} into {{.Target}}
{{- end}}
{{- if .Commits}}

Commits:
{{.Commits}}
{{- end}}

Changes:
` + "```" + `
{{.Diff}}
` + "```" + `

Additional context:
Title override: {{if .Title}}{{.Title}}{{else}}None{{end}}
Body context: {{if .Body}}{{.Body}}{{else}}None{{end}}
Scope: {{if .Scope}}{{.Scope}}{{else}}not specified{{end}}
`
