// SPDX-License-Identifier: Apache-2.0
package init

// ProjectConfigTemplate renders ./marx.yaml
const ProjectConfigTemplate = `# marx project configuration
# Values here override ~/.config/marx/config.yaml; MARX_* variables and flags override both.
# Run 'marx config schema --scope local' for the full schema.

api:
  url: "{{ .APIURL }}"
  timeout: "{{ .APITimeout }}"

quiz:
  debounce: "{{ .Debounce }}"
  auto-advance: {{ .AutoAdvance }}

output:
  format: "{{ .OutputFormat }}"
`

// AnswersTemplate renders an answers file to fill in and pass with --answers
const AnswersTemplate = `# marx quiz answers
# Fill in every value and run: marx quiz --answers {{ .Path }}

# Monthly marketing budget in USD
budget: ""
{{ range .Categories }}
# {{ .Title }}: {{ join .Options ", " }}
{{ .Key }}: "{{ .Default }}"
{{ end -}}
`
