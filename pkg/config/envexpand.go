package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

// ExpandEnv expands {{.VAR_NAME}} references in YAML content with values from
// the process environment. Shell-style $VAR is left alone so literal dollar
// signs in prompts and personas survive.
//
// Examples:
//   - access_token: "{{.BC_ACCESS_TOKEN}}" → value of BC_ACCESS_TOKEN
//   - base_url: "https://{{.GATEWAY_HOST}}/v1" → host expanded in place
//
// Missing variables expand to empty string. Content that is not a valid
// template is returned unchanged so the YAML parser reports the real problem.
func ExpandEnv(data []byte) []byte {
	tmpl, err := template.New("config").Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return data
	}

	envMap := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			envMap[key] = value
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, envMap); err != nil {
		return data
	}
	return buf.Bytes()
}
