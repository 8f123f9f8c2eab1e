package provision

// Generated boilerplate pushed into the two platform repositories. Content
// mirrors what the marketing site and the internal-management repo carry;
// provisioning overwrites these files on every run.

const mainReadme = `# Super Mega AI - Internal Management

## 🤖 AI Agent Platform Infrastructure

This repository contains the internal management system for the Super Mega AI platform.

### Structure
- ` + "`scripts/`" + ` - Deployment and management scripts
- ` + "`config/`" + ` - Configuration files for agents and infrastructure
- ` + "`docs/`" + ` - Technical documentation and specifications
- ` + "`monitoring/`" + ` - Performance monitoring and alerting

### Repositories
- **Internal Management**: [swanhtet01.github.io](https://github.com/swanhtet01/swanhtet01.github.io)
- **Client Platform**: [supermega.dev](https://github.com/swanhtet01/supermega.dev)

### Integration
- Google Workspace (Calendar, Sheets, Gmail)
- GitHub Actions (CI/CD)
- Monitoring & Analytics

---
**Super Mega AI** - Building the future with autonomous AI agents
`

const clientReadme = `# Super Mega AI - Revolutionary AI Agent Platform

🚀 **Deploy intelligent AI agents that take real action**

## Platform Overview
Super Mega AI provides autonomous AI agents for:
- Browser automation and web scraping
- Global market intelligence gathering
- Lead generation and customer acquisition
- Social media management and optimization

## Quick Links
- **Website**: [supermega.dev](https://supermega.dev)
- **Contact**: [contact.html](https://supermega.dev/contact.html)
- **Pricing**: Starting at $47/month

## Get Started
1. Visit [supermega.dev](https://supermega.dev)
2. Choose your plan
3. Deploy your AI agents
4. Watch them work 24/7

---
**Super Mega AI** - The future of business automation
`

const developmentDocs = `# Development Guide

## Local setup
1. Copy the sample environment file and fill in the integration secrets.
2. Run the contact service: ` + "`opsd daemon -m serve`" + `
3. Run the automation driver: ` + "`opsd daemon -m automate`" + `

## Conventions
- All integration failures are logged, never raised to callers.
- Configuration comes from the environment; see the deployment guide.
`

const deploymentDocs = `# Deployment Guide

## Required environment
- OPSD_GITHUB_TOKEN - repository provisioning
- GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET - sign-in
- GOOGLE_SHEETS_CREDENTIALS - service-account JSON for Sheets/Calendar
- SLACK_WEBHOOK_URL - team notifications

## Rollout
Deployments are driven by the GitHub Actions workflow in this repository;
pushes to main redeploy the platform.
`

const deployScript = `#!/usr/bin/env bash
set -euo pipefail

echo "🚀 Deploying Super Mega AI Platform..."
opsd validate -m serve
opsd daemon -m serve &
opsd daemon -m automate &
wait
`

const monitorScript = `#!/usr/bin/env bash
set -euo pipefail

curl -fsS "${OPSD_SITE_URL:-https://supermega.dev}" >/dev/null \
  && echo "website healthy" \
  || echo "website check failed" >&2
`

const agentConfig = `# Agent platform configuration
agents:
  contact-intake:
    enabled: true
    effects: [sheets, confirmation-email, team-notify, calendar-link]
  site-monitor:
    enabled: true
    interval: 5m
maintenance:
  daily: "0 9 * * *"
  hourly: "0 * * * *"
`

const githubWorkflow = `name: Deploy Super Mega AI Platform

on:
  push:
    branches: [ main ]
  pull_request:
    branches: [ main ]

jobs:
  deploy:
    runs-on: ubuntu-latest

    steps:
    - uses: actions/checkout@v3

    - name: Setup Go
      uses: actions/setup-go@v5
      with:
        go-version: '1.24'

    - name: Run tests
      run: go test ./...

    - name: Build
      run: go build ./...

    - name: Deploy to production
      if: github.ref == 'refs/heads/main'
      run: ./scripts/deploy.sh
      env:
        OPSD_GITHUB_TOKEN: ${{ secrets.OPSD_GITHUB_TOKEN }}
        GOOGLE_SHEETS_CREDENTIALS: ${{ secrets.GOOGLE_SHEETS_CREDENTIALS }}
`

const robotsTxt = `User-agent: *
Allow: /

Sitemap: https://supermega.dev/sitemap.xml
`

const sitemapXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://supermega.dev/</loc><priority>1.0</priority></url>
  <url><loc>https://supermega.dev/contact.html</loc><priority>0.8</priority></url>
  <url><loc>https://supermega.dev/pricing</loc><priority>0.8</priority></url>
</urlset>
`

const jekyllConfig = `title: Super Mega AI
description: Autonomous AI agents for business automation
url: https://supermega.dev

theme: minima
plugins:
  - jekyll-sitemap
  - jekyll-seo-tag

exclude:
  - api/
`

const htaccess = `Options -Indexes
RewriteEngine On
RewriteCond %{HTTPS} off
RewriteRule ^(.*)$ https://%{HTTP_HOST}%{REQUEST_URI} [L,R=301]
`

// MainRepoFiles is the internal-management batch (path -> content).
func MainRepoFiles() map[string]string {
	return map[string]string{
		"README.md":                    mainReadme,
		"DEVELOPMENT.md":               developmentDocs,
		"DEPLOYMENT.md":                deploymentDocs,
		"scripts/deploy.sh":            deployScript,
		"scripts/monitor.sh":           monitorScript,
		"config/agent-config.yaml":     agentConfig,
		".github/workflows/deploy.yml": githubWorkflow,
	}
}

// ClientRepoFiles is the public-facing batch (path -> content).
func ClientRepoFiles() map[string]string {
	return map[string]string{
		"README.md":     clientReadme,
		"robots.txt":    robotsTxt,
		"sitemap.xml":   sitemapXML,
		"_config.yml":   jekyllConfig,
		"api/.htaccess": htaccess,
	}
}
