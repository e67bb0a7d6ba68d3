package leakgate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

type ciTemplate struct {
	path    string
	content string
}

var ciTemplates = map[string]ciTemplate{
	"gitlab": {
		path: ".gitlab-ci.yml",
		content: `stages: [scan]
secrets:
  stage: scan
  image: golang:1.25
  script:
    - go install github.com/leakgate/leakgate@latest
    - leakgate --format json . | tee leakgate-findings.json
  artifacts:
    when: always
    paths:
      - leakgate-findings.json
`,
	},
	"github": {
		path: ".github/workflows/leakgate.yml",
		content: `name: leakgate
on: [push, pull_request]
permissions:
  contents: read
  security-events: write
jobs:
  secrets:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/leakgate/leakgate@latest
      - run: leakgate --format sarif . > leakgate.sarif
      - if: always()
        uses: github/codeql-action/upload-sarif@v3
        with:
          sarif_file: leakgate.sarif
`,
	},
	"bitbucket": {
		path: "bitbucket-pipelines.yml",
		content: `pipelines:
  default:
    - step:
        name: leakgate scan
        image: golang:1.25
        caches:
          - go
        script:
          - go install github.com/leakgate/leakgate@latest
          - leakgate --format json . | tee leakgate-findings.json
        artifacts:
          - leakgate-findings.json
`,
	},
	"azure": {
		path: "azure-pipelines.yml",
		content: `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go install github.com/leakgate/leakgate@latest
    ~/go/bin/leakgate --format json . | tee leakgate-findings.json
  displayName: 'leakgate scan'
- publish: leakgate-findings.json
  artifact: leakgate-findings
  condition: succeededOrFailed()
`,
	},
}

func ciProviders() []string {
	out := make([]string, 0, len(ciTemplates))
	for k := range ciTemplates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func newCICmd(a *app) *cobra.Command {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}

	var provider, dir string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tpl, ok := ciTemplates[provider]
			if !ok {
				return fmt.Errorf("unknown --provider %q. Supported: %s", provider, strings.Join(ciProviders(), ", "))
			}
			path := filepath.Join(dir, tpl.path)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(tpl.content), 0o644); err != nil {
				return err
			}
			a.logger.Debug().Str("provider", provider).Str("path", path).Msg("wrote ci template")
			fmt.Fprintln(a.stdout, "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: "+strings.Join(ciProviders(), " | "))
	initCmd.Flags().StringVar(&dir, "dir", ".", "repository root to write the template into")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	_ = initCmd.MarkFlagRequired("provider")
	ci.AddCommand(initCmd)
	return ci
}
